package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

// maxImageBytes caps how much of a remote image is read into memory.
const maxImageBytes = 20 << 20

// UploadFeaturedImage downloads the image at imageURL and re-uploads it as a
// WordPress media asset, returning its id. The filename is derived from the
// post title with a .jpg suffix; the format is assumed, not verified. The
// upload sends only the authorization header; the multipart writer supplies
// the content type with its boundary.
//
// Callers treat any returned error as "publish without a featured image":
// an article is valuable even without its illustration.
func (c *Client) UploadFeaturedImage(ctx context.Context, imageURL, title string, ep ResolvedEndpoint, session AuthSession) (int, error) {
	data, err := c.downloadImage(ctx, imageURL)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", TagSlug(title)+".jpg")
	if err != nil {
		return 0, err
	}
	if _, err := part.Write(data); err != nil {
		return 0, err
	}
	writer.WriteField("title", title)
	writer.WriteField("alt_text", title)
	if err := writer.Close(); err != nil {
		return 0, err
	}

	resp, err := c.request(ctx, http.MethodPost, ep.BaseURL+"/media", session.Authorization, &buf, writer.FormDataContentType())
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return 0, &RequestError{Op: "upload media", Status: resp.StatusCode, Message: errorMessage(resp)}
	}

	var asset struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		return 0, err
	}
	c.logger.Info().Int("media_id", asset.ID).Msg("featured image uploaded")
	return asset.ID, nil
}

// downloadImage fetches the image with an unauthenticated GET.
func (c *Client) downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	resp, err := c.request(ctx, http.MethodGet, imageURL, "", nil, "")
	if err != nil {
		return nil, &ImageDownloadError{URL: imageURL}
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		drainStatus := resp.StatusCode
		return nil, &ImageDownloadError{URL: imageURL, Status: drainStatus}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &ImageDownloadError{URL: imageURL}
	}
	return data, nil
}
