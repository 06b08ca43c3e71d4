package pressflow

import (
	"crypto/subtle"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pressflow/wordpress"
)

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setOperatorSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, a.Views.Login(true, CsrfToken(c)))
}

func handleLogout(c echo.Context) error {
	if err := clearOperatorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleSiteList(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return a.renderSiteList(c, "")
}

func (a *App) handleSiteSave(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	name := strings.TrimSpace(c.FormValue("name"))
	siteURL := strings.TrimSpace(c.FormValue("site_url"))
	username := strings.TrimSpace(c.FormValue("username"))
	secret := c.FormValue("secret")
	if siteURL == "" || username == "" || secret == "" {
		return a.renderSiteList(c, "Site URL, username and application password are required.")
	}
	if name == "" {
		name = siteURL
	}
	if _, err := a.Store.SaveSite(name, siteURL, username, secret); err != nil {
		return err
	}
	return a.renderSiteList(c, "Site saved. The password is stored as a hash and must be re-entered to publish.")
}

func (a *App) handleSiteDelete(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err := a.Store.DeleteSite(c.Param("id")); err != nil {
		return err
	}
	return a.renderSiteList(c, "Site removed.")
}

// handleSiteUse verifies a re-entered secret against the saved hash and, on
// success, connects to the site and returns its category list.
func (a *App) handleSiteUse(c echo.Context) error {
	if !IsOperator(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	conn, _, err := a.siteConnection(c)
	if err != nil {
		return Render(c, a.Views.Message("error", err.Error()))
	}
	return a.fetchCategories(c, conn)
}

func (a *App) renderSiteList(c echo.Context, msg string) error {
	sites, err := a.Store.ListSites()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Sites(sites, msg, CsrfToken(c)))
}

// siteConnection assembles the WordPress credentials for a request, either
// from the raw form fields or from a saved site plus its re-entered secret.
// The returned name identifies the site in history entries.
func (a *App) siteConnection(c echo.Context) (wordpress.SiteConnection, string, error) {
	secret := c.FormValue("secret")
	if id := c.FormValue("site_id"); id != "" {
		if secret == "" {
			return wordpress.SiteConnection{}, "", errors.New("re-enter the application password for the saved site")
		}
		site, err := a.Store.VerifySiteSecret(id, secret)
		if err != nil {
			if errors.Is(err, ErrSecretMismatch) {
				return wordpress.SiteConnection{}, "", err
			}
			if errors.Is(err, sql.ErrNoRows) {
				return wordpress.SiteConnection{}, "", errors.New("saved site no longer exists")
			}
			return wordpress.SiteConnection{}, "", err
		}
		return wordpress.SiteConnection{SiteURL: site.SiteURL, Username: site.Username, Secret: secret}, site.Name, nil
	}

	siteURL := strings.TrimSpace(c.FormValue("site_url"))
	username := strings.TrimSpace(c.FormValue("username"))
	if siteURL == "" || username == "" || secret == "" {
		return wordpress.SiteConnection{}, "", errors.New("site URL, username and application password are required")
	}
	return wordpress.SiteConnection{SiteURL: siteURL, Username: username, Secret: secret}, siteURL, nil
}
