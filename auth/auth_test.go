package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("p")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "p" {
		t.Fatal("password stored in plaintext")
	}
	if err := h.Compare(hash, "p"); err != nil {
		t.Errorf("Expected match, got %v", err)
	}
	if err := h.Compare(hash, "q"); err == nil {
		t.Error("Expected mismatch for wrong password")
	}
}

func TestBcryptHasherLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("x", 80)

	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("Expected passwords over 72 bytes to hash, got %v", err)
	}
	if err := h.Compare(hash, long); err != nil {
		t.Errorf("Expected match for the same long password, got %v", err)
	}
	// Only the first 72 bytes count.
	if err := h.Compare(hash, strings.Repeat("x", 72)+"yyyyyyyy"); err != nil {
		t.Errorf("Expected bytes past 72 to be ignored, got %v", err)
	}
	if err := h.Compare(hash, strings.Repeat("x", 71)); err == nil {
		t.Error("Expected mismatch for a shorter password")
	}
}

func TestDefaultCostIsTen(t *testing.T) {
	hash, err := NewBcryptHasher(DefaultCost).Hash("p")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != 10 {
		t.Fatalf("Expected cost 10, got %d (%v)", cost, err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	codec := NewTokenCodec("secret", time.Hour)
	codec.now = func() time.Time { return now }

	token, err := codec.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Errorf("Expected sub a@x.com, got %q", claims.Subject)
	}
	if got := claims.ExpiresAt.Unix() - now.Unix(); got != 3600 {
		t.Errorf("Expected exp = now+3600, got now+%d", got)
	}
}

func TestTokenRejected(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	codec := NewTokenCodec("secret", time.Hour)
	codec.now = func() time.Time { return now }
	token, _ := codec.Issue("a@x.com")

	other := NewTokenCodec("other", time.Hour)
	other.now = codec.now
	if _, err := other.Verify(token); err == nil {
		t.Error("Expected token signed with another secret to be rejected")
	}

	codec.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err := codec.Verify(token)
	if err == nil {
		t.Fatal("Expected expired token to be rejected")
	}
	if errors.Cause(err) != ErrInvalidToken || !strings.Contains(err.Error(), "expired") {
		t.Errorf("Expected ErrInvalidToken carrying the expiry reason, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "a@x.com", "exp": now.Add(time.Hour).Unix()})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := codec.Verify(unsigned); err == nil {
		t.Error("Expected alg=none token to be rejected")
	}

	if _, err := codec.Verify("not-a-token"); err == nil {
		t.Error("Expected garbage to be rejected")
	}
}

func TestMiddleware(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour)
	valid, _ := codec.Issue("a@x.com")

	var gotSubject string
	h := Middleware(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Error("Expected claims in context")
			return
		}
		gotSubject = claims.Subject
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is missing"},
		{"missing token", "Bearer", http.StatusUnauthorized, "Token is missing"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected-route", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != c.status {
				t.Fatalf("Expected status %d, got %d", c.status, rr.Code)
			}
			if c.msg != "" {
				var body map[string]string
				json.NewDecoder(rr.Body).Decode(&body)
				if body["message"] != c.msg {
					t.Errorf("Expected message %q, got %q", c.msg, body["message"])
				}
			}
		})
	}
	if gotSubject != "a@x.com" {
		t.Errorf("Expected subject a@x.com, got %q", gotSubject)
	}
}
