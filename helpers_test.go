package pressflow

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  Around  ", "spaces-around"},
		{"Go 1.24 Released!", "go-1-24-released"},
		{"already-sluggy", "already-sluggy"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	if got := BuildURL("https://example.com", "history"); got != "https://example.com/history/" {
		t.Errorf("BuildURL = %q", got)
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" go , web,, ,testing ")
	want := []string{"go", "web", "testing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTags = %v, want %v", got, want)
	}
}
