package pressflow

import (
	"testing"
	"time"
)

func TestAttemptLimiterAllows(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("fourth attempt should be blocked")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("a different key should not be affected")
	}
}

func TestAttemptLimiterCheckDoesNotRecord(t *testing.T) {
	l := NewAttemptLimiter(1, time.Minute)
	if !l.Check("ip") || !l.Check("ip") {
		t.Error("Check alone should never consume the budget")
	}
	l.Record("ip")
	if l.Check("ip") {
		t.Error("after Record the budget should be spent")
	}
}

func TestAttemptLimiterWindowExpiry(t *testing.T) {
	l := NewAttemptLimiter(1, 10*time.Millisecond)
	if !l.Allow("ip") {
		t.Fatal("first attempt should pass")
	}
	if l.Allow("ip") {
		t.Fatal("second immediate attempt should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.Allow("ip") {
		t.Error("attempt after the window should pass again")
	}
}
