package wordpress

import (
	"fmt"
	"strings"
)

// SiteUnreachableError means no REST API root candidate responded with a
// success status for the site.
type SiteUnreachableError struct {
	SiteURL   string
	Attempted []string
}

func (e *SiteUnreachableError) Error() string {
	return fmt.Sprintf("no WordPress REST API found for %s (tried %s) — check the site URL and that the REST API is not disabled",
		e.SiteURL, strings.Join(e.Attempted, ", "))
}

// AuthFailedError means every credential-encoding variant was rejected.
// It never echoes secret material.
type AuthFailedError struct {
	Username string
	Variants []string
}

func (e *AuthFailedError) Error() string {
	return fmt.Sprintf("authentication failed for user %q after trying %s — verify the username and generate an Application Password under Users → Profile",
		e.Username, strings.Join(e.Variants, ", "))
}

// PermissionError means the authenticated user cannot create posts, either by
// role inspection or by an explicit 403 on the capability probe.
type PermissionError struct {
	Username string
	Roles    []string
	Required []string
}

func (e *PermissionError) Error() string {
	roles := "no visible roles"
	if len(e.Roles) > 0 {
		roles = "roles " + strings.Join(e.Roles, ", ")
	}
	return fmt.Sprintf("user %q has %s but publishing requires one of: %s — ask a site administrator to update the account",
		e.Username, roles, strings.Join(e.Required, ", "))
}

// RequestError is a generic non-2xx response on an authenticated call,
// carrying the server's status and message.
type RequestError struct {
	Op      string
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s failed (HTTP %d): %s", e.Op, e.Status, e.Message)
}

// ImageDownloadError means the featured image could not be fetched from its
// source URL.
type ImageDownloadError struct {
	URL    string
	Status int
}

func (e *ImageDownloadError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("image download failed for %s", e.URL)
	}
	return fmt.Sprintf("image download failed for %s (HTTP %d)", e.URL, e.Status)
}

// PublishError means the final post-creation call was rejected.
type PublishError struct {
	Status  int
	Message string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing rejected (HTTP %d): %s", e.Status, e.Message)
}
