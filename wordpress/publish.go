package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Publish runs the whole workflow: resolve endpoint, authenticate, verify
// permission, resolve tags, upload the featured image, then submit the post.
//
// Endpoint, authentication and the final submission are fatal on failure.
// Tag resolution and the featured image are best-effort: their failures
// reduce the result (fewer tags, no image) and are reported in the
// PublishResult rather than aborting. Side effects of the early steps, such
// as a created tag or an uploaded media asset, are not rolled back when the
// final call fails. The final POST is never retried: a duplicate submission would
// create a duplicate post.
func (c *Client) Publish(ctx context.Context, post GeneratedPost, conn SiteConnection, categoryID string, publishAt *time.Time) (*PublishResult, error) {
	ep, session, verification, err := c.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	if verification.Warning != "" {
		c.logger.Warn().Str("user", verification.Identity.Name).Msg(verification.Warning)
	}

	tags := c.ResolveTags(ctx, post.Tags, ep, session)

	featuredID := 0
	mediaSkipped := ""
	if post.ImageURL == "" {
		mediaSkipped = "no image URL on the generated post"
	} else {
		id, err := c.UploadFeaturedImage(ctx, post.ImageURL, post.Title, ep, session)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn().Err(err).Msg("continuing without featured image")
			mediaSkipped = err.Error()
		} else {
			featuredID = id
		}
	}

	payload := BuildPostPayload(post, categoryID, tags.IDs(), featuredID, publishAt, time.Now())
	published, err := c.submitPost(ctx, ep, session, payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("post_id", published.ID).
		Str("status", published.Status).
		Int("tags", len(tags.Tags)).
		Int("tags_skipped", len(tags.Skipped)).
		Bool("featured_image", featuredID != 0).
		Msg("post published")

	return &PublishResult{
		Post:         published,
		Verification: verification,
		Tags:         tags,
		FeaturedID:   featuredID,
		MediaSkipped: mediaSkipped,
	}, nil
}

// submitPost performs the final POST {endpoint}/posts call.
//
// Cancellation is honored up to this point only. Once the POST goes on the
// wire it runs on a detached context: aborting it mid-flight would leave the
// caller unable to tell whether the server created the post, and a retry
// would risk a duplicate. The HTTP client's own timeout still bounds the call.
func (c *Client) submitPost(ctx context.Context, ep ResolvedEndpoint, session AuthSession, payload PostPayload) (PublishedPost, error) {
	if err := ctx.Err(); err != nil {
		return PublishedPost{}, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PublishedPost{}, err
	}
	resp, err := c.request(context.WithoutCancel(ctx), http.MethodPost, ep.BaseURL+"/posts", session.Authorization, bytes.NewReader(body), "application/json")
	if err != nil {
		return PublishedPost{}, err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return PublishedPost{}, &PublishError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return PublishedPost{}, err
	}
	var published PublishedPost
	if err := json.Unmarshal(raw, &published); err != nil {
		return PublishedPost{}, err
	}
	published.Raw = raw
	return published, nil
}
