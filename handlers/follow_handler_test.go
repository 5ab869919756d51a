package handlers_test

import (
	"net/http"
	"testing"

	"tellsapi/models"
)

type graphState struct {
	following int64
	followers int64
	counter   int
}

func (s *testServer) graph(t *testing.T, target string) graphState {
	t.Helper()
	var st graphState
	s.db.Model(&models.Following{}).Count(&st.following)
	s.db.Model(&models.Follower{}).Count(&st.followers)
	var u models.User
	if err := s.db.Where("user_name = ?", target).First(&u).Error; err != nil {
		t.Fatalf("load %s: %v", target, err)
	}
	st.counter = u.Followers
	return st
}

func follow(a, b string) map[string]string {
	return map[string]string{"followerName": a, "followingName": b}
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		name := "non-atomic"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, atomic)
			s.signup(t, "a@x.com", "p", "alice")
			s.signup(t, "b@x.com", "p", "bob")

			before := s.graph(t, "bob")

			resp := s.do("POST", "/follow", follow("alice", "bob"))
			if resp.Code != http.StatusOK || messageOf(t, resp) != "User followed successfully" {
				t.Fatalf("Expected 200 on follow, got %d %s", resp.Code, resp.Body.String())
			}
			if st := s.graph(t, "bob"); st != (graphState{following: 1, followers: 1, counter: 1}) {
				t.Fatalf("Unexpected state after follow: %+v", st)
			}

			// Second follow is a conflict and writes nothing
			resp = s.do("POST", "/follow", follow("alice", "bob"))
			if resp.Code != http.StatusConflict || messageOf(t, resp) != "User is already following" {
				t.Fatalf("Expected 409 on repeated follow, got %d %s", resp.Code, resp.Body.String())
			}
			if st := s.graph(t, "bob"); st != (graphState{following: 1, followers: 1, counter: 1}) {
				t.Fatalf("Repeated follow changed state: %+v", st)
			}

			resp = s.do("POST", "/unfollow", follow("alice", "bob"))
			if resp.Code != http.StatusOK || messageOf(t, resp) != "User unfollowed successfully" {
				t.Fatalf("Expected 200 on unfollow, got %d %s", resp.Code, resp.Body.String())
			}
			if after := s.graph(t, "bob"); after != before {
				t.Fatalf("Round trip did not restore state: before %+v after %+v", before, after)
			}

			resp = s.do("POST", "/unfollow", follow("alice", "bob"))
			if resp.Code != http.StatusConflict || messageOf(t, resp) != "User is not following" {
				t.Fatalf("Expected 409 on repeated unfollow, got %d %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestFollowValidation(t *testing.T) {
	s := newTestServer(t, false)
	s.signup(t, "a@x.com", "p", "alice")

	cases := []struct {
		name   string
		path   string
		body   map[string]string
		status int
	}{
		{"self follow existing", "/follow", follow("alice", "alice"), http.StatusBadRequest},
		{"self follow unknown", "/follow", follow("ghost", "ghost"), http.StatusBadRequest},
		{"missing follower", "/follow", follow("", "alice"), http.StatusBadRequest},
		{"missing following", "/follow", follow("alice", ""), http.StatusBadRequest},
		{"unknown target", "/follow", follow("alice", "ghost"), http.StatusNotFound},
		{"unknown follower", "/follow", follow("ghost", "alice"), http.StatusNotFound},
		{"unfollow missing", "/unfollow", follow("alice", ""), http.StatusBadRequest},
		{"unfollow unknown", "/unfollow", follow("alice", "ghost"), http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := s.do("POST", c.path, c.body)
			if resp.Code != c.status {
				t.Fatalf("Expected %d, got %d %s", c.status, resp.Code, resp.Body.String())
			}
		})
	}

	if resp := s.do("POST", "/follow", "{"); resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestListFollowing(t *testing.T) {
	s := newTestServer(t, false)
	s.signup(t, "a@x.com", "p", "alice")
	bob := s.signup(t, "b@x.com", "p", "bob")

	resp := s.do("GET", "/following/alice", nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "[]\n" {
		t.Fatalf("Expected empty list, got %d %q", resp.Code, resp.Body.String())
	}

	if resp := s.do("POST", "/follow", follow("alice", "bob")); resp.Code != http.StatusOK {
		t.Fatalf("follow: %d", resp.Code)
	}

	resp = s.do("GET", "/following/alice", nil)
	var rows []struct {
		FollowingID string `json:"following_id"`
		UserName    string `json:"user_name"`
		User        struct {
			UserName string `json:"user_name"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	decode(t, resp, &rows)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.FollowingID != bob.UserID || r.User.UserName != "bob" || r.User.Email != "b@x.com" {
		t.Fatalf("Unexpected row: %+v", r)
	}

	if resp := s.do("GET", "/following/ghost", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown user, got %d", resp.Code)
	}
}

func TestUnfollowWithDriftedCounter(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		name := "non-atomic"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, atomic)
			s.signup(t, "a@x.com", "p", "alice")
			s.signup(t, "b@x.com", "p", "bob")

			if resp := s.do("POST", "/follow", follow("alice", "bob")); resp.Code != http.StatusOK {
				t.Fatalf("Expected 200 on follow, got %d %s", resp.Code, resp.Body.String())
			}
			s.db.Model(&models.User{}).Where("user_name = ?", "bob").Update("followers", 0)

			resp := s.do("POST", "/unfollow", follow("alice", "bob"))
			if resp.Code != http.StatusOK || messageOf(t, resp) != "User unfollowed successfully" {
				t.Fatalf("Expected 200 on unfollow, got %d %s", resp.Code, resp.Body.String())
			}
			if st := s.graph(t, "bob"); st != (graphState{}) {
				t.Fatalf("Expected edges removed and counter at zero, got %+v", st)
			}
		})
	}
}
