package pressflow

import (
	"errors"
	"testing"
	"time"

	"github.com/eringen/pressflow/wordpress"
)

func TestDraftCachePutGet(t *testing.T) {
	c := NewDraftCache(time.Minute)
	d := c.Put(Draft{Topic: "x", Style: "plain", Post: wordpress.GeneratedPost{Title: "X"}})
	if d.ID == "" {
		t.Fatal("Put should assign an id")
	}

	got, err := c.Get(d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Post.Title != "X" || got.Topic != "x" {
		t.Errorf("draft = %+v", got)
	}
}

func TestDraftCacheUnknownID(t *testing.T) {
	c := NewDraftCache(time.Minute)
	if _, err := c.Get("nope"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestDraftCacheExpiry(t *testing.T) {
	c := NewDraftCache(5 * time.Millisecond)
	d := c.Put(Draft{Topic: "x", Style: "plain"})
	time.Sleep(15 * time.Millisecond)
	if _, err := c.Get(d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("expired draft should be gone, got %v", err)
	}
}

func TestDraftCacheDelete(t *testing.T) {
	c := NewDraftCache(time.Minute)
	d := c.Put(Draft{Topic: "x", Style: "plain"})
	c.Delete(d.ID)
	if _, err := c.Get(d.ID); err == nil {
		t.Error("deleted draft should be gone")
	}
}
