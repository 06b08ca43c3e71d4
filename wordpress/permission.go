package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// publishRoles are the WordPress roles allowed to create posts.
var publishRoles = []string{"administrator", "editor", "author"}

func hasPublishRole(roles []string) bool {
	for _, r := range roles {
		for _, want := range publishRoles {
			if r == want {
				return true
			}
		}
	}
	return false
}

// VerifyCanPublish confirms the session's user may create posts.
//
// When roles are visible they decide the outcome. Some configurations omit
// role data from /users/me; in that case a second read of
// /users/{id} is attempted, and failing that a practical capability probe:
// create a throwaway draft and delete it again. The probe intentionally
// touches the remote site; a failed delete leaves an orphan draft behind,
// which is logged but never propagated.
//
// A probe failure that is neither success nor 403 leaves permission unknown;
// the workflow proceeds with a warning since the publish call itself is the
// authoritative check.
func (c *Client) VerifyCanPublish(ctx context.Context, ep ResolvedEndpoint, session AuthSession) (Verification, error) {
	identity := session.Identity

	if len(identity.Roles) == 0 {
		if detailed, err := c.fetchUser(ctx, ep, session, identity.ID); err == nil && len(detailed.Roles) > 0 {
			c.logger.Debug().Strs("roles", detailed.Roles).Msg("roles recovered from user endpoint")
			identity.Roles = detailed.Roles
		}
	}

	if len(identity.Roles) > 0 {
		if hasPublishRole(identity.Roles) {
			return Verification{Identity: identity, Confirmed: true, Method: "roles"}, nil
		}
		return Verification{}, &PermissionError{
			Username: identity.Name,
			Roles:    identity.Roles,
			Required: publishRoles,
		}
	}

	return c.probeCapability(ctx, ep, session, identity)
}

func (c *Client) fetchUser(ctx context.Context, ep ResolvedEndpoint, session AuthSession, id int) (UserIdentity, error) {
	resp, err := c.request(ctx, http.MethodGet, ep.BaseURL+"/users/"+strconv.Itoa(id), session.Authorization, nil, "")
	if err != nil {
		return UserIdentity{}, err
	}
	defer resp.Body.Close()
	if !success(resp.StatusCode) {
		return UserIdentity{}, &RequestError{Op: "fetch user", Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	var identity UserIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return UserIdentity{}, err
	}
	return identity, nil
}

// probeCapability creates a draft post and deletes it again to test create
// permission directly.
func (c *Client) probeCapability(ctx context.Context, ep ResolvedEndpoint, session AuthSession, identity UserIdentity) (Verification, error) {
	probe := map[string]string{
		"title":   "Connection check " + uuid.NewString()[:8] + " - please ignore",
		"content": "Temporary draft created to verify publishing permissions.",
		"status":  "draft",
	}
	body, _ := json.Marshal(probe)

	resp, err := c.request(ctx, http.MethodPost, ep.BaseURL+"/posts", session.Authorization, bytes.NewReader(body), "application/json")
	if err != nil {
		if ctx.Err() != nil {
			return Verification{}, ctx.Err()
		}
		c.logger.Warn().Err(err).Msg("capability probe failed; proceeding unverified")
		return Verification{
			Identity: identity,
			Method:   "unverified",
			Warning:  "could not verify publishing permission; the publish itself may still be rejected",
		}, nil
	}
	defer resp.Body.Close()

	if success(resp.StatusCode) {
		var created struct {
			ID int `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err == nil && created.ID != 0 {
			c.deleteProbeDraft(ctx, ep, session, created.ID)
		}
		return Verification{Identity: identity, Confirmed: true, Method: "probe"}, nil
	}

	if resp.StatusCode == http.StatusForbidden {
		drain(resp)
		return Verification{}, &PermissionError{
			Username: identity.Name,
			Required: publishRoles,
		}
	}

	status := resp.StatusCode
	drain(resp)
	c.logger.Warn().Int("status", status).Msg("capability probe inconclusive; proceeding unverified")
	return Verification{
		Identity: identity,
		Method:   "unverified",
		Warning:  "could not verify publishing permission; the publish itself may still be rejected",
	}, nil
}

// deleteProbeDraft removes the probe draft. Failure is swallowed: an orphan
// draft on the remote site is an accepted side effect of the probe.
func (c *Client) deleteProbeDraft(ctx context.Context, ep ResolvedEndpoint, session AuthSession, id int) {
	resp, err := c.request(ctx, http.MethodDelete, ep.BaseURL+"/posts/"+strconv.Itoa(id), session.Authorization, nil, "")
	if err != nil {
		c.logger.Warn().Int("post_id", id).Err(err).Msg("probe draft delete failed; orphan draft left on site")
		return
	}
	status := resp.StatusCode
	drain(resp)
	if !success(status) {
		c.logger.Warn().Int("post_id", id).Int("status", status).Msg("probe draft delete rejected; orphan draft left on site")
	}
}
