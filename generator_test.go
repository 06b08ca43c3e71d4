package pressflow

import (
	"strings"
	"testing"
)

func TestGenerateEveryStyle(t *testing.T) {
	for _, style := range Styles() {
		post, err := Generate("container orchestration", style.Key, "")
		if err != nil {
			t.Fatalf("Generate(%q) failed: %v", style.Key, err)
		}
		if post.Title == "" || post.Content == "" || post.Excerpt == "" {
			t.Errorf("style %q produced an incomplete post: %+v", style.Key, post)
		}
		if !strings.Contains(post.Content, "<h2>") {
			t.Errorf("style %q content has no sections", style.Key)
		}
		if post.SEOTitle == "" || post.MetaDescription == "" {
			t.Errorf("style %q missing SEO fields", style.Key)
		}
		if post.FocusKeyphrase != "container orchestration" {
			t.Errorf("style %q keyphrase = %q", style.Key, post.FocusKeyphrase)
		}
		if !strings.Contains(post.ImageURL, "container-orchestration") {
			t.Errorf("style %q image url = %q, want slug-seeded placeholder", style.Key, post.ImageURL)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate("home coffee roasting", "technical", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate("home coffee roasting", "technical", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Title != b.Title || a.Content != b.Content {
		t.Error("same topic and style should generate identical posts")
	}
}

func TestGenerateUnknownStyle(t *testing.T) {
	if _, err := Generate("anything", "baroque", ""); err == nil {
		t.Error("unknown style should be rejected")
	}
	if _, err := Generate("  ", "plain", ""); err == nil {
		t.Error("blank topic should be rejected")
	}
}

func TestGenerateFeedbackShorter(t *testing.T) {
	full, err := Generate("remote work", "professional", "")
	if err != nil {
		t.Fatal(err)
	}
	short, err := Generate("remote work", "professional", "make it shorter please")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(short.Content, "<h2>") >= strings.Count(full.Content, "<h2>") {
		t.Error("shorter feedback should drop a section")
	}

	long, err := Generate("remote work", "professional", "longer")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(long.Content, "<h2>") <= strings.Count(full.Content, "<h2>") {
		t.Error("longer feedback should add a section")
	}
}

func TestGenerateFeedbackFewerTags(t *testing.T) {
	post, err := Generate("search engine optimization basics", "professional", "fewer tags")
	if err != nil {
		t.Fatal(err)
	}
	if len(post.Tags) > 2 {
		t.Errorf("tags = %v, want at most 2 after feedback", post.Tags)
	}
}

func TestDeriveTags(t *testing.T) {
	tags := deriveTags("Go Web Development", []string{"engineering"})
	joined := strings.Join(tags, ",")
	if !strings.Contains(joined, "development") || !strings.Contains(joined, "engineering") {
		t.Errorf("tags = %v", tags)
	}
	for _, tag := range tags {
		if tag != strings.ToLower(tag) {
			t.Errorf("tag %q should be lowercase", tag)
		}
	}
	if len(tags) > 5 {
		t.Errorf("got %d tags, want at most 5", len(tags))
	}
}

func TestGenerateEscapesTopic(t *testing.T) {
	post, err := Generate("<script>alert(1)</script>", "plain", "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(post.Content, "<script>") {
		t.Error("topic must be escaped in generated content")
	}
}
