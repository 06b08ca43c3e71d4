package wordpress

import (
	"context"
	"errors"
	"testing"
)

func TestVerifyCanPublishByRole(t *testing.T) {
	site := newFakeSite(t)

	client := NewClient()
	v, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session([]string{"editor"}))
	if err != nil {
		t.Fatalf("VerifyCanPublish failed: %v", err)
	}
	if !v.Confirmed || v.Method != "roles" {
		t.Errorf("Verification = %+v, want confirmed via roles", v)
	}
	// Role inspection alone must not touch the site.
	if got := site.countRequests("POST"); got != 0 {
		t.Errorf("expected no probe requests, got %d", got)
	}
}

func TestVerifyCanPublishInsufficientRole(t *testing.T) {
	site := newFakeSite(t)

	client := NewClient()
	_, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session([]string{"subscriber"}))

	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("expected *PermissionError, got %v", err)
	}
	if len(permErr.Roles) != 1 || permErr.Roles[0] != "subscriber" {
		t.Errorf("Roles = %v, want [subscriber]", permErr.Roles)
	}
	if len(permErr.Required) != 3 {
		t.Errorf("Required = %v, want the three publishing roles", permErr.Required)
	}
}

func TestVerifyCanPublishRecoversRolesFromUserEndpoint(t *testing.T) {
	site := newFakeSite(t)
	site.detailedRoles = []string{"author"}

	client := NewClient()
	v, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session(nil))
	if err != nil {
		t.Fatalf("VerifyCanPublish failed: %v", err)
	}
	if !v.Confirmed || v.Method != "roles" {
		t.Errorf("Verification = %+v, want confirmed via recovered roles", v)
	}
	if got := site.countRequests("GET /wp-json/wp/v2/users/7"); got != 1 {
		t.Errorf("expected detailed user lookup, got %d requests", got)
	}
	if got := site.countRequests("POST /wp-json/wp/v2/posts"); got != 0 {
		t.Errorf("probe should not run when roles are recoverable, got %d posts", got)
	}
}

func TestVerifyCanPublishProbeConfirms(t *testing.T) {
	site := newFakeSite(t)

	client := NewClient()
	v, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session(nil))
	if err != nil {
		t.Fatalf("VerifyCanPublish failed: %v", err)
	}
	if !v.Confirmed || v.Method != "probe" {
		t.Errorf("Verification = %+v, want confirmed via probe", v)
	}
	if got := site.countRequests("POST /wp-json/wp/v2/posts"); got != 1 {
		t.Errorf("expected exactly one probe draft, got %d", got)
	}
	if len(site.deleted) != 1 || site.deleted[0] != 77 {
		t.Errorf("probe draft should be deleted, deleted = %v", site.deleted)
	}
}

func TestVerifyCanPublishProbeForbidden(t *testing.T) {
	site := newFakeSite(t)
	site.postStatus = 403

	client := NewClient()
	_, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session(nil))

	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("expected *PermissionError on 403 probe, got %v", err)
	}
}

func TestVerifyCanPublishProbeInconclusive(t *testing.T) {
	site := newFakeSite(t)
	site.postStatus = 500

	client := NewClient()
	v, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session(nil))
	if err != nil {
		t.Fatalf("inconclusive probe must not fail the workflow: %v", err)
	}
	if v.Confirmed || v.Method != "unverified" {
		t.Errorf("Verification = %+v, want unverified", v)
	}
	if v.Warning == "" {
		t.Error("unverified result should carry a warning for the operator")
	}
}

func TestVerifyCanPublishProbeDeleteFailureSwallowed(t *testing.T) {
	site := newFakeSite(t)
	site.deleteStatus = 500

	client := NewClient()
	v, err := client.VerifyCanPublish(context.Background(), site.endpoint(), site.session(nil))
	if err != nil {
		t.Fatalf("delete failure must not propagate: %v", err)
	}
	if !v.Confirmed {
		t.Errorf("create succeeded, capability is confirmed even if cleanup failed: %+v", v)
	}
}
