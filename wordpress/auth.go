package wordpress

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode"
)

// authVariant is a pure credential transform. WordPress displays Application
// Passwords grouped with spaces, so the literal operator input often needs
// cleanup before the Basic header validates.
type authVariant struct {
	name   string
	encode func(SiteConnection) string // returns "username:secret"
}

// authVariants are tried in order; the first variant the server accepts wins.
var authVariants = []authVariant{
	{
		name: "verbatim",
		encode: func(conn SiteConnection) string {
			return conn.Username + ":" + conn.Secret
		},
	},
	{
		name: "trimmed",
		encode: func(conn SiteConnection) string {
			return strings.TrimSpace(conn.Username) + ":" + strings.TrimSpace(conn.Secret)
		},
	},
	{
		name: "application-password",
		encode: func(conn SiteConnection) string {
			return conn.Username + ":" + stripSpaces(conn.Secret)
		},
	},
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func basicHeader(userinfo string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(userinfo))
}

// Authenticate establishes a session against GET {endpoint}/users/me, trying
// each credential-encoding variant in order and stopping at the first 200.
// The winning header value and decoded identity form the AuthSession. This
// call is idempotent and safe to retry.
func (c *Client) Authenticate(ctx context.Context, ep ResolvedEndpoint, conn SiteConnection) (AuthSession, error) {
	tried := make([]string, 0, len(authVariants))
	for _, variant := range authVariants {
		tried = append(tried, variant.name)
		header := basicHeader(variant.encode(conn))

		resp, err := c.request(ctx, http.MethodGet, ep.BaseURL+"/users/me", header, nil, "")
		if err != nil {
			if ctx.Err() != nil {
				return AuthSession{}, ctx.Err()
			}
			c.logger.Debug().Str("variant", variant.name).Err(err).Msg("auth attempt failed")
			continue
		}
		if !success(resp.StatusCode) {
			status := resp.StatusCode
			drain(resp)
			c.logger.Debug().Str("variant", variant.name).Int("status", status).Msg("auth variant rejected")
			continue
		}

		var identity UserIdentity
		err = json.NewDecoder(resp.Body).Decode(&identity)
		resp.Body.Close()
		if err != nil {
			c.logger.Warn().Str("variant", variant.name).Err(err).Msg("identity decode failed")
			continue
		}
		c.logger.Info().Str("variant", variant.name).Str("user", identity.Name).Msg("authenticated")
		return AuthSession{Authorization: header, Identity: identity}, nil
	}
	return AuthSession{}, &AuthFailedError{Username: conn.Username, Variants: tried}
}
