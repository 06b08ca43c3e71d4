package pressflow

import (
	"time"

	"github.com/eringen/pressflow/wordpress"
)

// SavedSite is a remembered WordPress connection. The secret is stored only
// as a bcrypt hash; the operator re-enters it when reusing the site.
type SavedSite struct {
	ID        string
	Name      string
	SiteURL   string
	Username  string
	CreatedAt string
}

// Image is a processed upload in the local featured-image library.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// Draft is a generated post held between preview and publish.
type Draft struct {
	ID        string
	Topic     string
	Style     string
	Post      wordpress.GeneratedPost
	CreatedAt time.Time
}

// StyleOption describes one writing style for the topic form.
type StyleOption struct {
	Key         string
	Label       string
	Description string
}

// HomeData feeds the main page template.
type HomeData struct {
	Styles    []StyleOption
	Sites     []SavedSite
	Images    []Image
	CSRFToken string
}

// PublishOutcome is the flattened result of a publish attempt, shaped for
// rendering rather than for programmatic inspection.
type PublishOutcome struct {
	Site         string
	PostID       int
	Status       string
	Link         string
	Scheduled    bool
	Warning      string
	SkippedTags  []string
	MediaSkipped string
	Err          string
}
