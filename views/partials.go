package views

import (
	"bytes"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pressflow"
	"github.com/eringen/pressflow/history"
)

// Sites renders the saved-site manager page.
func Sites(sites []pressflow.SavedSite, msg string, csrfToken string) templ.Component {
	body := component(func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Saved sites</h1><p><a href="/">back to the workbench</a></p>`)
		if msg != "" {
			buf.WriteString(`<p class="ok">` + esc(msg) + "</p>")
		}
		if len(sites) == 0 {
			buf.WriteString("<p>No saved sites yet.</p>")
		} else {
			buf.WriteString("<table><thead><tr><th>Name</th><th>Site</th><th>Username</th><th>Saved</th><th></th></tr></thead><tbody>")
			for _, site := range sites {
				buf.WriteString("<tr><td>" + esc(site.Name) + "</td><td>" + esc(site.SiteURL) + "</td><td>" + esc(site.Username) + "</td><td>" + esc(site.CreatedAt) + "</td>")
				buf.WriteString(`<td><button hx-delete="/sites/` + esc(site.ID) + `/" hx-target="body" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}' hx-confirm="Remove this site?">remove</button></td></tr>`)
			}
			buf.WriteString("</tbody></table>")
		}

		buf.WriteString("<fieldset><legend>Save a site</legend>")
		buf.WriteString(`<form method="post" action="/sites/save/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<p><label>Name <input name="name"/></label></p>`)
		buf.WriteString(`<p><label>Site URL <input name="site_url" size="32" required/></label></p>`)
		buf.WriteString(`<p><label>Username <input name="username" required/></label> `)
		buf.WriteString(`<label>Application password <input type="password" name="secret" required/></label></p>`)
		buf.WriteString(`<p>The password is verified and stored only as a hash; you re-enter it when publishing.</p>`)
		buf.WriteString(`<button type="submit">Save</button>`)
		buf.WriteString("</form></fieldset>")
	})
	return Layout("pressflow — sites", body)
}

// History renders the publish log page.
func History(entries []history.Entry) templ.Component {
	body := component(func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Publish history</h1><p><a href="/">back to the workbench</a></p>`)
		if len(entries) == 0 {
			buf.WriteString("<p>Nothing published yet.</p>")
			return
		}
		buf.WriteString("<table><thead><tr><th>When</th><th>Site</th><th>Title</th><th>Status</th><th>Post</th><th>Took</th></tr></thead><tbody>")
		for _, e := range entries {
			class := "ok"
			if e.Status == "failed" {
				class = "error"
			}
			buf.WriteString("<tr><td>" + esc(e.CreatedAt.Format("2006-01-02 15:04")) + "</td>")
			buf.WriteString("<td>" + esc(e.Site) + "</td><td>" + esc(e.PostTitle) + "</td>")
			buf.WriteString(`<td class="` + class + `">` + esc(e.Status))
			if e.Error != "" {
				buf.WriteString("<br/><small>" + esc(e.Error) + "</small>")
			}
			if e.TagsSkipped > 0 {
				buf.WriteString(fmt.Sprintf("<br/><small>%d tag(s) skipped</small>", e.TagsSkipped))
			}
			buf.WriteString("</td>")
			if e.PostID > 0 {
				buf.WriteString(fmt.Sprintf("<td>#%d</td>", e.PostID))
			} else {
				buf.WriteString("<td>—</td>")
			}
			buf.WriteString("<td>" + esc(e.Duration.Round(10*time.Millisecond).String()) + "</td></tr>")
		}
		buf.WriteString("</tbody></table>")
	})
	return Layout("pressflow — history", body)
}

// Images renders the featured-image library page.
func Images(images []pressflow.Image, csrfToken string) templ.Component {
	body := component(func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>Image library</h1><p><a href="/">back to the workbench</a></p>`)
		if len(images) == 0 {
			buf.WriteString("<p>No images yet.</p>")
		} else {
			buf.WriteString("<table><thead><tr><th>File</th><th>Original</th><th>Dimensions</th><th>Size</th><th></th></tr></thead><tbody>")
			for _, img := range images {
				buf.WriteString(`<tr><td><a href="/public/uploads/` + esc(img.Filename) + `">` + esc(img.Filename) + "</a></td>")
				buf.WriteString("<td>" + esc(img.OriginalName) + "</td>")
				buf.WriteString(fmt.Sprintf("<td>%d×%d</td><td>%d bytes</td>", img.Width, img.Height, img.Size))
				buf.WriteString(`<td><button hx-delete="/images/` + esc(img.Filename) + `/" hx-target="body" hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}' hx-confirm="Delete this image?">delete</button></td></tr>`)
			}
			buf.WriteString("</tbody></table>")
		}

		buf.WriteString("<fieldset><legend>Upload</legend>")
		buf.WriteString(`<form method="post" action="/images/upload/" enctype="multipart/form-data">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="file" name="image" accept="image/*" required/> `)
		buf.WriteString(`<button type="submit">Upload</button>`)
		buf.WriteString("</form></fieldset>")
	})
	return Layout("pressflow — images", body)
}

// Funcs wires the package's components into the app.
func Funcs() pressflow.ViewFuncs {
	return pressflow.ViewFuncs{
		Login:         Login,
		Home:          Home,
		Preview:       Preview,
		Categories:    Categories,
		PublishResult: PublishResult,
		Sites:         Sites,
		History:       History,
		Images:        Images,
		Message:       Message,
		NotFound:      NotFound,
		ServerError:   ServerError,
	}
}
