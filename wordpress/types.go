package wordpress

import "encoding/json"

// SiteConnection carries the operator-entered credentials for one workflow
// invocation. The secret is an Application Password or account password; it is
// held read-only for the duration of a single publish and never persisted.
type SiteConnection struct {
	SiteURL  string
	Username string
	Secret   string
}

// ResolvedEndpoint is the confirmed REST API root for a site. It is derived
// fresh on every workflow run because site configuration may change.
type ResolvedEndpoint struct {
	BaseURL   string
	Attempted []string // candidates probed, for diagnostics
}

// AuthSession is the product of a successful authentication: the exact
// Authorization header value that worked, plus the decoded identity.
// It must never be logged or serialized beyond one publish operation.
type AuthSession struct {
	Authorization string
	Identity      UserIdentity
}

// UserIdentity describes the authenticated WordPress user. Roles may be empty
// when the site's identity endpoint omits role data.
type UserIdentity struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Category is a WordPress taxonomy category offered for operator selection.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TagRecord is a resolved tag: a stable numeric identifier for a tag name.
type TagRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GeneratedPost is the immutable article handed to the publisher by the
// content generator. AIOSEO-specific fields are optional and fall back to the
// legacy SEO fields during payload assembly.
type GeneratedPost struct {
	Title           string
	Content         string // HTML
	Excerpt         string
	SEOTitle        string
	MetaDescription string
	Tags            []string
	ImageURL        string

	FocusKeyphrase    string
	AIOSEOTitle       string
	AIOSEODescription string
	AIOSEOTags        []string
}

// PublishedPost is the server's representation of the created post. Raw holds
// the full response body verbatim.
type PublishedPost struct {
	ID     int    `json:"id"`
	Status string `json:"status"` // draft, publish or future
	Link   string `json:"link"`

	Raw json.RawMessage `json:"-"`
}

// Verification reports how publish permission was established. Confirmed is
// false only in the "permission unknown" case, where the workflow proceeds
// anyway and the live publish call is the authoritative check.
type Verification struct {
	Identity  UserIdentity
	Confirmed bool
	Method    string // "roles", "probe" or "unverified"
	Warning   string
}

// SkippedTag records a tag that contributed no id, and why. One bad tag never
// aborts a publish.
type SkippedTag struct {
	Name   string
	Reason string
}

// TagResolution is the outcome of resolving a set of tag names: the resolved
// records in input order, plus whatever had to be skipped.
type TagResolution struct {
	Tags    []TagRecord
	Skipped []SkippedTag
}

// IDs returns the resolved tag ids in order.
func (r TagResolution) IDs() []int {
	ids := make([]int, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// PublishResult is the full outcome of one publish invocation, including the
// degraded parts (skipped tags, missing featured image) so callers can report
// them without parsing logs.
type PublishResult struct {
	Post         PublishedPost
	Verification Verification
	Tags         TagResolution
	FeaturedID   int    // 0 when no featured image was attached
	MediaSkipped string // reason the featured image was skipped, if it was
}
