package wordpress

import (
	"encoding/json"
	"strconv"
	"time"
)

// PostPayload is the JSON body submitted to POST {endpoint}/posts. Optional
// fields carry explicit presence rules: Date only when scheduling,
// FeaturedMedia only when an asset was uploaded.
type PostPayload struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Status        string   `json:"status"`
	Categories    []int    `json:"categories"`
	Tags          []int    `json:"tags"`
	Date          string   `json:"date,omitempty"`
	FeaturedMedia int      `json:"featured_media,omitempty"`
	Meta          PostMeta `json:"meta"`
}

// PostMeta carries both SEO plugin schemes simultaneously: the legacy Yoast
// fields and the AIOSEO fields, so the post scores correctly whichever plugin
// the site runs.
type PostMeta struct {
	YoastTitle    string `json:"_yoast_wpseo_title"`
	YoastMetaDesc string `json:"_yoast_wpseo_metadesc"`

	AIOSEOTitle        string `json:"_aioseo_title"`
	AIOSEODescription  string `json:"_aioseo_description"`
	AIOSEOKeywords     string `json:"_aioseo_keywords"`
	AIOSEOOGTitle      string `json:"_aioseo_og_title"`
	AIOSEOOGDesc       string `json:"_aioseo_og_description"`
	AIOSEOTwitterTitle string `json:"_aioseo_twitter_title"`
	AIOSEOTwitterDesc  string `json:"_aioseo_twitter_description"`
	AIOSEOKeyphrases   string `json:"_aioseo_keyphrases"`
}

// keyphraseAnalysis mirrors the structure AIOSEO stores for its focus
// keyphrase scoring.
type keyphraseAnalysis struct {
	Keyphrase string `json:"keyphrase"`
	Score     int    `json:"score"`
	Analysis  struct {
		Basic       activeFlag `json:"basic"`
		Title       activeFlag `json:"title"`
		Description activeFlag `json:"description"`
	} `json:"analysis"`
}

type activeFlag struct {
	IsActive bool `json:"isActive"`
}

// BuildPostPayload assembles the outgoing post body. It is pure, with no I/O,
// so payload-shape behavior is testable without network mocking.
//
// Status is future only when publishAt is strictly after now, in which case
// the date field carries the scheduled instant; otherwise the post publishes
// immediately and no date override is sent.
func BuildPostPayload(post GeneratedPost, categoryID string, tagIDs []int, mediaID int, publishAt *time.Time, now time.Time) PostPayload {
	payload := PostPayload{
		Title:      post.Title,
		Content:    post.Content,
		Excerpt:    post.Excerpt,
		Status:     "publish",
		Categories: []int{},
		Tags:       tagIDs,
		Meta:       buildMeta(post),
	}
	if payload.Tags == nil {
		payload.Tags = []int{}
	}
	if categoryID != "" {
		if id, err := strconv.Atoi(categoryID); err == nil {
			payload.Categories = []int{id}
		}
	}
	if mediaID != 0 {
		payload.FeaturedMedia = mediaID
	}
	if publishAt != nil && publishAt.After(now) {
		payload.Status = "future"
		payload.Date = publishAt.Format(time.RFC3339)
	}
	return payload
}

// buildMeta populates both SEO schemes, with AIOSEO fields falling back to
// the legacy fields (and those to title/excerpt) when absent.
func buildMeta(post GeneratedPost) PostMeta {
	keyphrase := post.FocusKeyphrase
	if keyphrase == "" && len(post.Tags) > 0 {
		keyphrase = post.Tags[0]
	}

	var analysis keyphraseAnalysis
	analysis.Keyphrase = keyphrase
	analysis.Score = 100
	analysis.Analysis.Basic.IsActive = true
	analysis.Analysis.Title.IsActive = true
	analysis.Analysis.Description.IsActive = true
	keyphrases, _ := json.Marshal([]keyphraseAnalysis{analysis})

	return PostMeta{
		YoastTitle:    post.SEOTitle,
		YoastMetaDesc: post.MetaDescription,

		AIOSEOTitle:        fallback(post.AIOSEOTitle, post.SEOTitle),
		AIOSEODescription:  fallback(post.AIOSEODescription, post.MetaDescription),
		AIOSEOKeywords:     keyphrase,
		AIOSEOOGTitle:      fallback(post.AIOSEOTitle, post.Title),
		AIOSEOOGDesc:       fallback(post.AIOSEODescription, post.Excerpt),
		AIOSEOTwitterTitle: fallback(post.AIOSEOTitle, post.Title),
		AIOSEOTwitterDesc:  fallback(post.AIOSEODescription, post.Excerpt),
		AIOSEOKeyphrases:   string(keyphrases),
	}
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
