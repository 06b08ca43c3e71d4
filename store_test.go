package pressflow

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListSites(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SaveSite("Blog", "https://example.com", "edna", "app pass word")
	if err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("saved site should get an id")
	}

	sites, err := s.ListSites()
	if err != nil {
		t.Fatalf("ListSites failed: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites, want 1", len(sites))
	}
	if sites[0].Name != "Blog" || sites[0].Username != "edna" {
		t.Errorf("site = %+v", sites[0])
	}
}

func TestVerifySiteSecret(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SaveSite("Blog", "https://example.com", "edna", "correct horse")
	if err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	site, err := s.VerifySiteSecret(saved.ID, "correct horse")
	if err != nil {
		t.Fatalf("VerifySiteSecret failed for the right secret: %v", err)
	}
	if site.SiteURL != "https://example.com" {
		t.Errorf("SiteURL = %q", site.SiteURL)
	}

	if _, err := s.VerifySiteSecret(saved.ID, "wrong"); !errors.Is(err, ErrSecretMismatch) {
		t.Errorf("expected ErrSecretMismatch, got %v", err)
	}
}

func TestDeleteSite(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SaveSite("Blog", "https://example.com", "edna", "pw")
	if err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}
	if err := s.DeleteSite(saved.ID); err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}
	sites, err := s.ListSites()
	if err != nil {
		t.Fatalf("ListSites failed: %v", err)
	}
	if len(sites) != 0 {
		t.Errorf("got %d sites after delete, want 0", len(sites))
	}
}

func TestImageMetadataRoundTrip(t *testing.T) {
	s := newTestStore(t)

	img := Image{
		Filename:     "sunset.jpg",
		OriginalName: "Sunset.PNG",
		Width:        1200,
		Height:       800,
		Size:         123456,
		UploadedAt:   "2026-08-29T10:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0] != img {
		t.Errorf("images = %+v, want the saved metadata back", images)
	}

	if err := s.DeleteImage("sunset.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("got %d images after delete, want 0", len(images))
	}
}
