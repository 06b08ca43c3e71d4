package pressflow

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressflow/history"
	"github.com/eringen/pressflow/wordpress"
)

func (a *App) handleHome(c echo.Context) error {
	if !IsOperator(c) {
		return Render(c, a.Views.Login(false, CsrfToken(c)))
	}
	sites, err := a.Store.ListSites()
	if err != nil {
		return err
	}
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(HomeData{
		Styles:    Styles(),
		Sites:     sites,
		Images:    images,
		CSRFToken: CsrfToken(c),
	}))
}

// handleGenerate produces a draft preview. A draft_id plus feedback text
// regenerates the same topic with the feedback applied.
func (a *App) handleGenerate(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	topic := c.FormValue("topic")
	style := c.FormValue("style")
	feedback := c.FormValue("feedback")

	if id := c.FormValue("draft_id"); id != "" {
		if prev, err := a.Drafts.Get(id); err == nil {
			topic, style = prev.Topic, prev.Style
			a.Drafts.Delete(id)
		}
	}

	post, err := Generate(topic, style, feedback)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}
	// A library image beats the generated placeholder when one is chosen.
	if filename := c.FormValue("image"); filename != "" {
		post.ImageURL = a.ImageURL(Image{Filename: filename})
	}
	draft := a.Drafts.Put(Draft{Topic: strings.TrimSpace(topic), Style: style, Post: post})
	a.logger.Info().Str("draft", draft.ID).Str("style", style).Msg("draft generated")
	return Render(c, a.Views.Preview(draft, CsrfToken(c)))
}

// handleCategories connects to the entered site and returns its categories
// so the operator can pick one before publishing.
func (a *App) handleCategories(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	conn, _, err := a.siteConnection(c)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}
	return a.fetchCategories(c, conn)
}

func (a *App) fetchCategories(c echo.Context, conn wordpress.SiteConnection) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), a.Config.RequestTimeout)
	defer cancel()

	ep, session, verification, err := a.WP.Connect(ctx, conn)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}
	cats, err := a.WP.ListCategories(ctx, ep, session)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}
	return Render(c, a.Views.Categories(cats, verification.Warning))
}

// handlePublish runs the whole workflow for a previewed draft and records
// the outcome in the history log.
func (a *App) handlePublish(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if !a.publishLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many publish attempts. Try again later.")
	}

	draft, err := a.Drafts.Get(c.FormValue("draft_id"))
	if err != nil {
		return Render(c, a.Views.Message("error", "The preview has expired. Generate the post again."))
	}
	conn, siteName, err := a.siteConnection(c)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}

	var publishAt *time.Time
	if raw := strings.TrimSpace(c.FormValue("publish_at")); raw != "" {
		at, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
		if err != nil {
			return Render(c, a.Views.Message("error", "Invalid schedule date."))
		}
		publishAt = &at
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), a.Config.RequestTimeout)
	defer cancel()

	started := time.Now()
	result, err := a.WP.Publish(ctx, draft.Post, conn, c.FormValue("category"), publishAt)
	a.recordHistory(siteName, draft.Post.Title, result, err, time.Since(started))

	if err != nil {
		a.logger.Error().Err(err).Str("site", siteName).Msg("publish failed")
		return Render(c, a.Views.PublishResult(PublishOutcome{Site: siteName, Err: publishErrorMessage(err)}))
	}

	a.Drafts.Delete(draft.ID)
	outcome := PublishOutcome{
		Site:         siteName,
		PostID:       result.Post.ID,
		Status:       result.Post.Status,
		Link:         result.Post.Link,
		Scheduled:    result.Post.Status == "future",
		Warning:      result.Verification.Warning,
		MediaSkipped: result.MediaSkipped,
	}
	for _, skipped := range result.Tags.Skipped {
		outcome.SkippedTags = append(outcome.SkippedTags, skipped.Name+" ("+skipped.Reason+")")
	}
	a.logger.Info().Int("post", result.Post.ID).Str("status", result.Post.Status).Str("site", siteName).Msg("published")
	return Render(c, a.Views.PublishResult(outcome))
}

func (a *App) recordHistory(site, title string, result *wordpress.PublishResult, err error, took time.Duration) {
	if a.History == nil {
		return
	}
	entry := history.Entry{
		Site:      site,
		PostTitle: title,
		Duration:  took,
	}
	if err != nil {
		entry.Status = "failed"
		entry.Error = err.Error()
	} else {
		entry.Status = "published"
		if result.Post.Status == "future" {
			entry.Status = "scheduled"
		}
		entry.PostID = result.Post.ID
		entry.TagsSkipped = len(result.Tags.Skipped)
	}
	if recErr := a.History.Record(entry); recErr != nil {
		a.logger.Error().Err(recErr).Msg("record history entry")
	}
}

func (a *App) handleHistory(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if a.History == nil {
		return Render(c, a.Views.History(nil))
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	entries, err := a.History.List(limit)
	if err != nil {
		return err
	}
	return Render(c, a.Views.History(entries))
}

// publishErrorMessage maps workflow errors to operator-facing text. The typed
// errors already carry actionable messages; anything else is shown as-is.
func publishErrorMessage(err error) string {
	var (
		unreachable *wordpress.SiteUnreachableError
		auth        *wordpress.AuthFailedError
		perm        *wordpress.PermissionError
		pub         *wordpress.PublishError
	)
	switch {
	case errors.As(err, &unreachable), errors.As(err, &auth), errors.As(err, &perm), errors.As(err, &pub):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "The site took too long to respond. Try again."
	default:
		return err.Error()
	}
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
