package wordpress

import (
	"context"
	"net/http"
	"strings"
)

// endpointCandidates are the REST API root paths probed, in order. Sites
// behind rewrites usually answer on the first; the query-string form covers
// installations with pretty permalinks disabled.
var endpointCandidates = []string{
	"/wp-json/wp/v2",
	"/wp-json",
	"/?rest_route=/wp/v2",
}

// NormalizeSiteURL cleans a user-entered site URL: trims surrounding
// whitespace, strips embedded spaces, prepends https:// when no scheme is
// present, and removes a trailing slash.
func NormalizeSiteURL(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, " ", "")
	if !strings.HasPrefix(clean, "http://") && !strings.HasPrefix(clean, "https://") {
		clean = "https://" + clean
	}
	return strings.TrimSuffix(clean, "/")
}

// ResolveEndpoint discovers a working REST API root for siteURL by probing
// each candidate with an unauthenticated GET and short-circuiting on the
// first success. All candidates failing yields a *SiteUnreachableError that
// names everything attempted.
func (c *Client) ResolveEndpoint(ctx context.Context, siteURL string) (ResolvedEndpoint, error) {
	base := NormalizeSiteURL(siteURL)
	attempted := make([]string, 0, len(endpointCandidates))
	for _, suffix := range endpointCandidates {
		candidate := base + suffix
		attempted = append(attempted, candidate)

		resp, err := c.request(ctx, http.MethodGet, candidate, "", nil, "")
		if err != nil {
			if ctx.Err() != nil {
				return ResolvedEndpoint{}, ctx.Err()
			}
			c.logger.Debug().Str("candidate", candidate).Err(err).Msg("endpoint probe failed")
			continue
		}
		status := resp.StatusCode
		drain(resp)
		c.logger.Debug().Str("candidate", candidate).Int("status", status).Msg("endpoint probe")
		if success(status) {
			return ResolvedEndpoint{BaseURL: candidate, Attempted: attempted}, nil
		}
	}
	return ResolvedEndpoint{}, &SiteUnreachableError{SiteURL: base, Attempted: attempted}
}
