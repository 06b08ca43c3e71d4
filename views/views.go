// Package views renders the pressflow UI as hand-built templ components.
// Pages are server-rendered HTML; the workflow swaps partials in with HTMX.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pressflow"
	"github.com/eringen/pressflow/wordpress"
)

// component wraps a buffer-building function as a templ.Component.
func component(build func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		build(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

func csrfField(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}

// Layout wraps body content in the page chrome. Styling is intentionally
// spartan; everything interesting happens in the partials.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head bytes.Buffer
		head.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		head.WriteString(`<meta charset="utf-8"/>`)
		head.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		head.WriteString(`<meta name="robots" content="noindex"/>`)
		head.WriteString("<title>" + esc(title) + "</title>")
		head.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		head.WriteString(`<style>
body{font-family:ui-monospace,monospace;max-width:60rem;margin:2rem auto;padding:0 1rem;background:#101418;color:#d8dee9}
h1,h2,h3{color:#eceff4}
input,select,textarea,button{font:inherit;background:#1b2129;color:#d8dee9;border:1px solid #3b4554;border-radius:4px;padding:.4rem .6rem}
button{cursor:pointer;background:#2e4a68}
fieldset{border:1px solid #3b4554;border-radius:6px;margin-bottom:1.5rem;padding:1rem}
table{border-collapse:collapse;width:100%}
td,th{border-bottom:1px solid #3b4554;padding:.35rem .5rem;text-align:left}
.error{color:#bf616a}.ok{color:#a3be8c}.warn{color:#ebcb8b}
.preview{border:1px solid #3b4554;border-radius:6px;padding:1rem;background:#161b22}
</style>`)
		head.WriteString("</head><body>")
		if _, err := w.Write(head.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// Login renders the operator password prompt.
func Login(showError bool, csrfToken string) templ.Component {
	body := component(func(buf *bytes.Buffer) {
		buf.WriteString("<h1>pressflow</h1>")
		buf.WriteString(`<form method="post" action="/login/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<label>Operator password <input type="password" name="password" autofocus/></label> `)
		buf.WriteString(`<button type="submit">Log in</button>`)
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString("</form>")
	})
	return Layout("pressflow — login", body)
}

// Home renders the main workbench: topic form, saved sites, and the target
// areas the HTMX partials land in.
func Home(data pressflow.HomeData) templ.Component {
	body := component(func(buf *bytes.Buffer) {
		buf.WriteString("<h1>pressflow</h1>")
		buf.WriteString(`<p><a href="/history/">history</a> · <a href="/images/">image library</a> · <a href="/sites/">saved sites</a>`)
		buf.WriteString(` · <form method="post" action="/logout/" style="display:inline">`)
		csrfField(buf, data.CSRFToken)
		buf.WriteString(`<button type="submit">log out</button></form></p>`)

		buf.WriteString("<fieldset><legend>1. Generate</legend>")
		buf.WriteString(`<form hx-post="/generate/" hx-target="#preview" hx-swap="innerHTML">`)
		csrfField(buf, data.CSRFToken)
		buf.WriteString(`<p><label>Topic <input name="topic" size="40" required/></label></p>`)
		buf.WriteString(`<p><label>Style <select name="style">`)
		for _, s := range data.Styles {
			buf.WriteString(`<option value="` + esc(s.Key) + `">` + esc(s.Label) + " — " + esc(s.Description) + "</option>")
		}
		buf.WriteString("</select></label></p>")
		if len(data.Images) > 0 {
			buf.WriteString(`<p><label>Featured image <select name="image"><option value="">generated placeholder</option>`)
			for _, img := range data.Images {
				buf.WriteString(`<option value="` + esc(img.Filename) + `">` + esc(img.OriginalName) + "</option>")
			}
			buf.WriteString("</select></label></p>")
		}
		buf.WriteString(`<button type="submit">Generate preview</button>`)
		buf.WriteString("</form></fieldset>")

		buf.WriteString(`<div id="preview"></div>`)

		buf.WriteString("<fieldset><legend>2. Connect &amp; publish</legend>")
		buf.WriteString(`<form id="publish-form" hx-post="/publish/" hx-target="#result" hx-swap="innerHTML">`)
		csrfField(buf, data.CSRFToken)
		buf.WriteString(`<input type="hidden" name="draft_id" id="draft-id"/>`)
		if len(data.Sites) > 0 {
			buf.WriteString(`<p><label>Saved site <select name="site_id"><option value="">enter manually</option>`)
			for _, site := range data.Sites {
				buf.WriteString(`<option value="` + esc(site.ID) + `">` + esc(site.Name) + " (" + esc(site.Username) + ")</option>")
			}
			buf.WriteString("</select></label></p>")
		}
		buf.WriteString(`<p><label>Site URL <input name="site_url" size="32" placeholder="https://example.com"/></label></p>`)
		buf.WriteString(`<p><label>Username <input name="username"/></label> `)
		buf.WriteString(`<label>Application password <input type="password" name="secret"/></label></p>`)
		buf.WriteString(`<p><button type="button" hx-post="/categories/" hx-target="#categories" hx-swap="innerHTML" hx-include="#publish-form">Load categories</button>`)
		buf.WriteString(` <span id="categories"><select name="category"><option value="">default category</option></select></span></p>`)
		buf.WriteString(`<p><label>Schedule (optional) <input type="datetime-local" name="publish_at"/></label></p>`)
		buf.WriteString(`<button type="submit">Publish</button>`)
		buf.WriteString("</form>")
		buf.WriteString(`<div id="result"></div>`)
		buf.WriteString("</fieldset>")
	})
	return Layout("pressflow", body)
}

// Preview shows a generated draft with a regenerate-with-feedback form.
func Preview(draft pressflow.Draft, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		post := draft.Post
		buf.WriteString(`<fieldset class="preview"><legend>Preview</legend>`)
		buf.WriteString("<h2>" + esc(post.Title) + "</h2>")
		buf.WriteString(`<p><em>` + esc(post.Excerpt) + "</em></p>")
		// Generated content is produced server-side from escaped templates.
		buf.WriteString(post.Content)
		buf.WriteString("<p>Tags: " + esc(strings.Join(post.Tags, ", ")) + "</p>")
		buf.WriteString("<p>SEO title: " + esc(post.SEOTitle) + "<br/>Meta description: " + esc(post.MetaDescription) + "</p>")
		if post.ImageURL != "" {
			buf.WriteString(`<p>Featured image source: <code>` + esc(post.ImageURL) + "</code></p>")
		}

		buf.WriteString(`<form hx-post="/generate/" hx-target="#preview" hx-swap="innerHTML">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="draft_id" value="` + esc(draft.ID) + `"/>`)
		buf.WriteString(`<p><label>Feedback <input name="feedback" size="40" placeholder="shorter, fewer tags, longer"/></label> `)
		buf.WriteString(`<button type="submit">Regenerate</button></p>`)
		buf.WriteString("</form>")
		buf.WriteString("</fieldset>")
		buf.WriteString(`<script>document.getElementById("draft-id").value = ` + fmt.Sprintf("%q", draft.ID) + `;</script>`)
	})
}

// Categories renders the category dropdown for the publish form.
func Categories(cats []wordpress.Category, warning string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<select name="category"><option value="">default category</option>`)
		for _, cat := range cats {
			buf.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, cat.ID, esc(cat.Name)))
		}
		buf.WriteString("</select>")
		if warning != "" {
			buf.WriteString(` <span class="warn">` + esc(warning) + "</span>")
		}
	})
}

// PublishResult renders the outcome of a publish attempt.
func PublishResult(outcome pressflow.PublishOutcome) templ.Component {
	return component(func(buf *bytes.Buffer) {
		if outcome.Err != "" {
			buf.WriteString(`<p class="error">Publishing to ` + esc(outcome.Site) + " failed: " + esc(outcome.Err) + "</p>")
			return
		}
		verb := "Published"
		if outcome.Scheduled {
			verb = "Scheduled"
		}
		buf.WriteString(`<p class="ok">` + verb + fmt.Sprintf(" post #%d on %s.", outcome.PostID, esc(outcome.Site)))
		if outcome.Link != "" {
			buf.WriteString(` <a href="` + esc(outcome.Link) + `" target="_blank" rel="noopener noreferrer">View</a>`)
		}
		buf.WriteString("</p>")
		if outcome.Warning != "" {
			buf.WriteString(`<p class="warn">` + esc(outcome.Warning) + "</p>")
		}
		if len(outcome.SkippedTags) > 0 {
			buf.WriteString(`<p class="warn">Skipped tags: ` + esc(strings.Join(outcome.SkippedTags, "; ")) + "</p>")
		}
		if outcome.MediaSkipped != "" {
			buf.WriteString(`<p class="warn">Published without a featured image: ` + esc(outcome.MediaSkipped) + "</p>")
		}
	})
}

// Message renders a one-line notice, kind is "error", "ok", or "warn".
func Message(kind, text string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<p class="` + esc(kind) + `">` + esc(text) + "</p>")
	})
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return Layout("Not found", component(func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>404</h1><p>Nothing here. <a href="/">Back to the workbench.</a></p>`)
	}))
}

// ServerError is the 500 page.
func ServerError() templ.Component {
	return Layout("Server error", component(func(buf *bytes.Buffer) {
		buf.WriteString(`<h1>500</h1><p>Something broke on our side. <a href="/">Try again.</a></p>`)
	}))
}
