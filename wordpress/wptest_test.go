package wordpress

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeSite is an in-memory WordPress REST API used across the package tests.
// The zero value accepts any credentials and starts with no tags.
type fakeSite struct {
	t  *testing.T
	mu sync.Mutex

	srv *httptest.Server

	// behavior knobs
	authorized    string          // accepted Authorization header; "" accepts any
	roles         []string        // roles reported by /users/me
	detailedRoles []string        // roles reported by /users/{id}
	failTagCreate map[string]bool // tag names whose creation returns 500
	mediaStatus   int             // 0 = success
	postStatus    int             // 0 = success
	deleteStatus  int             // 0 = success
	postHook      func()          // runs while POST /posts is being served

	// recordings
	requests  []string
	tags      map[string]int
	nextTagID int
	created   []string         // tag names created
	posts     []map[string]any // bodies received by POST /posts
	deleted   []int            // post ids deleted
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	s := &fakeSite{
		t:         t,
		tags:      make(map[string]int),
		nextTagID: 100,
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *fakeSite) url() string { return s.srv.URL }

func (s *fakeSite) record(r *http.Request) {
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
}

func (s *fakeSite) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r)

	path := r.URL.Path
	if path == "/wp-json/wp/v2" && r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string]string{"namespace": "wp/v2"})
		return
	}
	rest, ok := strings.CutPrefix(path, "/wp-json/wp/v2/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	if s.authorized != "" && r.Header.Get("Authorization") != s.authorized {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "invalid_credentials", "message": "Invalid credentials."})
		return
	}

	switch {
	case rest == "users/me" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "name": "edna", "roles": s.roles})

	case strings.HasPrefix(rest, "users/") && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "name": "edna", "roles": s.detailedRoles})

	case rest == "categories" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Uncategorized"},
			{"id": 5, "name": "Guides"},
		})

	case rest == "tags" && r.Method == http.MethodGet:
		search := r.URL.Query().Get("search")
		var results []map[string]any
		for name, id := range s.tags {
			if strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
				results = append(results, map[string]any{"id": id, "name": name})
			}
		}
		writeJSON(w, http.StatusOK, results)

	case rest == "tags" && r.Method == http.MethodPost:
		var body struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if s.failTagCreate[body.Name] {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "term_error", "message": "cannot create term"})
			return
		}
		s.nextTagID++
		s.tags[body.Name] = s.nextTagID
		s.created = append(s.created, body.Name)
		writeJSON(w, http.StatusCreated, map[string]any{"id": s.nextTagID, "name": body.Name})

	case rest == "media" && r.Method == http.MethodPost:
		if s.mediaStatus != 0 {
			writeJSON(w, s.mediaStatus, map[string]string{"code": "upload_error", "message": "upload rejected"})
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			s.t.Errorf("media upload is not multipart: %v", err)
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": 9})

	case rest == "posts" && r.Method == http.MethodPost:
		if s.postHook != nil {
			s.postHook()
		}
		if s.postStatus != 0 {
			writeJSON(w, s.postStatus, map[string]string{"code": "rest_cannot_create", "message": "Sorry, you are not allowed to create posts."})
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		s.posts = append(s.posts, body)
		status, _ := body["status"].(string)
		writeJSON(w, http.StatusCreated, map[string]any{"id": 77, "status": status, "link": s.srv.URL + "/?p=77"})

	case strings.HasPrefix(rest, "posts/") && r.Method == http.MethodDelete:
		if s.deleteStatus != 0 {
			writeJSON(w, s.deleteStatus, map[string]string{"code": "rest_cannot_delete", "message": "delete rejected"})
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(rest, "posts/"))
		s.deleted = append(s.deleted, id)
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// countRequests returns how many recorded requests match the method+path prefix.
func (s *fakeSite) countRequests(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if strings.HasPrefix(req, prefix) {
			n++
		}
	}
	return n
}

// endpoint builds the ResolvedEndpoint tests use to skip the probing step.
func (s *fakeSite) endpoint() ResolvedEndpoint {
	return ResolvedEndpoint{BaseURL: s.srv.URL + "/wp-json/wp/v2"}
}

// session builds an AuthSession with the given roles, bypassing Authenticate.
func (s *fakeSite) session(roles []string) AuthSession {
	return AuthSession{
		Authorization: basicHeader("edna:secret"),
		Identity:      UserIdentity{ID: 7, Name: "edna", Roles: roles},
	}
}

func intIDs(vals []any) []int {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		f, ok := v.(float64)
		if !ok {
			panic(fmt.Sprintf("not a number: %v", v))
		}
		out = append(out, int(f))
	}
	return out
}
