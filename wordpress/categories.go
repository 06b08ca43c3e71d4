package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
)

// Connect resolves the endpoint, authenticates and verifies publish
// permission in one step. Categories and publishing both go through this
// path, so a fresh probe happens on every workflow run.
func (c *Client) Connect(ctx context.Context, conn SiteConnection) (ResolvedEndpoint, AuthSession, Verification, error) {
	ep, err := c.ResolveEndpoint(ctx, conn.SiteURL)
	if err != nil {
		return ResolvedEndpoint{}, AuthSession{}, Verification{}, err
	}
	session, err := c.Authenticate(ctx, ep, conn)
	if err != nil {
		return ResolvedEndpoint{}, AuthSession{}, Verification{}, err
	}
	verification, err := c.VerifyCanPublish(ctx, ep, session)
	if err != nil {
		return ResolvedEndpoint{}, AuthSession{}, Verification{}, err
	}
	return ep, session, verification, nil
}

// ListCategories returns the site's categories for operator selection.
// Only the server's default page is fetched; exhaustive pagination is a known
// limitation.
func (c *Client) ListCategories(ctx context.Context, ep ResolvedEndpoint, session AuthSession) ([]Category, error) {
	resp, err := c.request(ctx, http.MethodGet, ep.BaseURL+"/categories", session.Authorization, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return nil, &RequestError{Op: "list categories", Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	var categories []Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FetchCategories is the UI-facing convenience: connect with the given
// credentials, then list categories.
func (c *Client) FetchCategories(ctx context.Context, conn SiteConnection) ([]Category, error) {
	ep, session, _, err := c.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	return c.ListCategories(ctx, ep, session)
}
