package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tellsapi/auth"
	"tellsapi/config"
	"tellsapi/database"
	"tellsapi/handlers"
	"tellsapi/logger"
	"tellsapi/models"
	"tellsapi/repositories"
	"tellsapi/routes"
)

const testSecret = "test-secret"

type testServer struct {
	handler http.Handler
	db      *gorm.DB
	tokens  *auth.TokenCodec
}

func newTestServer(t *testing.T, atomicGraph bool) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, logger.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stores := repositories.NewStores(db.DB)
	tokens := auth.NewTokenCodec(testSecret, time.Hour)
	h := routes.SetupRoutes(
		handlers.NewUserHandler(stores.Users, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		handlers.NewTellHandler(stores.Tells),
		handlers.NewFollowHandler(stores.Users, stores.Follows, repositories.NewUnitOfWork(db.DB, atomicGraph)),
		handlers.NewSystemHandler(),
		auth.Middleware(tokens),
		logger.Discard(),
		[]string{"*"},
	)
	return &testServer{handler: h, db: db.DB, tokens: tokens}
}

// Helper function to perform HTTP requests
func (s *testServer) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) signup(t *testing.T, email, password, userName string) *models.User {
	t.Helper()
	resp := s.do("POST", "/signup", map[string]string{"email": email, "password": password, "user_name": userName})
	if resp.Code != http.StatusOK {
		t.Fatalf("signup %s: expected 200, got %d: %s", userName, resp.Code, resp.Body.String())
	}
	var u models.User
	if err := s.db.Where("user_name = ?", userName).First(&u).Error; err != nil {
		t.Fatalf("load %s: %v", userName, err)
	}
	return &u
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, rr, &body)
	if m, ok := body["message"].(string); ok {
		return m
	}
	m, _ := body["error"].(string)
	return m
}
