package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TagSlug derives a tag slug: lowercased, whitespace runs joined with single
// hyphens.
func TagSlug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// ResolveTags converts free-text tag names into stable numeric ids, creating
// missing tags. Each name is handled independently: an existing tag whose
// name matches case-insensitively is reused, otherwise a new tag is created.
// Any per-tag failure (search rejection, creation race, permission denial)
// skips that tag with a reason instead of aborting; the result preserves the
// order of the tags that succeeded.
func (c *Client) ResolveTags(ctx context.Context, names []string, ep ResolvedEndpoint, session AuthSession) TagResolution {
	var res TagResolution
	for _, name := range names {
		record, err := c.resolveTag(ctx, name, ep, session)
		if err != nil {
			c.logger.Warn().Str("tag", name).Err(err).Msg("tag skipped")
			res.Skipped = append(res.Skipped, SkippedTag{Name: name, Reason: err.Error()})
			continue
		}
		res.Tags = append(res.Tags, record)
	}
	return res
}

func (c *Client) resolveTag(ctx context.Context, name string, ep ResolvedEndpoint, session AuthSession) (TagRecord, error) {
	searchURL := ep.BaseURL + "/tags?search=" + url.QueryEscape(name)
	resp, err := c.request(ctx, http.MethodGet, searchURL, session.Authorization, nil, "")
	if err != nil {
		return TagRecord{}, err
	}
	if success(resp.StatusCode) {
		var existing []TagRecord
		err := json.NewDecoder(resp.Body).Decode(&existing)
		resp.Body.Close()
		if err == nil {
			for _, tag := range existing {
				if strings.EqualFold(tag.Name, name) {
					c.logger.Debug().Str("tag", name).Int("id", tag.ID).Msg("existing tag matched")
					return tag, nil
				}
			}
		}
	} else {
		drain(resp)
	}

	return c.createTag(ctx, name, ep, session)
}

func (c *Client) createTag(ctx context.Context, name string, ep ResolvedEndpoint, session AuthSession) (TagRecord, error) {
	body, _ := json.Marshal(map[string]string{
		"name": name,
		"slug": TagSlug(name),
	})
	resp, err := c.request(ctx, http.MethodPost, ep.BaseURL+"/tags", session.Authorization, bytes.NewReader(body), "application/json")
	if err != nil {
		return TagRecord{}, err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return TagRecord{}, &RequestError{Op: "create tag", Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	var created TagRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return TagRecord{}, err
	}
	c.logger.Debug().Str("tag", name).Int("id", created.ID).Msg("tag created")
	return created, nil
}
