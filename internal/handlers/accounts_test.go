package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bearbank/internal/models"
	"bearbank/internal/service"
)

func TestMeHandler(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 7, Username: "misiu1", Role: models.RoleUser}}
	dir := &mockDirectory{selfAccount: &models.Account{ID: 7, Username: "misiu1", Balance: 1000, Role: models.RoleUser}}
	s := &service.Service{Authorization: auth, Directory: dir}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/me", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		User struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Balance  int64  `json:"balance"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.User.ID != 7 || out.User.Balance != 1000 || out.User.Role != models.RoleUser {
		t.Fatalf("unexpected user: %+v", out.User)
	}
}

func TestListUsersHandler_BasicViewOmitsRole(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 1, Username: "misiu1", Role: models.RoleUser}}
	dir := &mockDirectory{basicList: []service.AccountSummary{
		{ID: 1, Username: "misiu1", Balance: 1000},
		{ID: 2, Username: "misiu2", Balance: 500},
	}}
	s := &service.Service{Authorization: auth, Directory: dir}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/users", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(out.Users))
	}
	if _, hasRole := out.Users[0]["role"]; hasRole {
		t.Fatalf("basic view must not expose roles: %+v", out.Users[0])
	}
}

func TestListUsersAdminHandler_IncludesRole(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 3, Username: "admin", Role: models.RoleAdmin}}
	dir := &mockDirectory{fullList: []models.Account{
		{ID: 1, Username: "misiu1", Balance: 1000, Role: models.RoleUser},
		{ID: 3, Username: "admin", Balance: 100000, Role: models.RoleAdmin},
	}}
	s := &service.Service{Authorization: auth, Directory: dir}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/admin/users", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(out.Users))
	}
	if out.Users[1]["role"] != models.RoleAdmin {
		t.Fatalf("admin view must expose roles: %+v", out.Users[1])
	}
}

func TestListUsersHandler_StorageError(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 1, Username: "misiu1", Role: models.RoleUser}}
	dir := &mockDirectory{basicErr: errors.New("db down")}
	s := &service.Service{Authorization: auth, Directory: dir}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/users", ""))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
}
