package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bearbank/internal/models"
	"bearbank/internal/service"
)

func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer good-token")
	return req
}

func TestTransferHandler_Success(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 1, Username: "misiu1", Role: models.RoleUser}}
	ledger := &mockLedger{}
	s := &service.Service{Authorization: auth, Ledger: ledger, Directory: &mockDirectory{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/transfer", `{"toUsername":"misiu2","amount":300}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Success bool `json:"success"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Success {
		t.Fatalf("expected success=true, body=%s", w.Body.String())
	}
	if ledger.lastFromID != 1 || ledger.lastToUsername != "misiu2" || ledger.lastAmount != 300 {
		t.Fatalf("ledger called with %d/%q/%d", ledger.lastFromID, ledger.lastToUsername, ledger.lastAmount)
	}
}

func TestTransferHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "invalid amount", err: service.ErrInvalidAmount, wantCode: http.StatusBadRequest},
		{name: "recipient not found", err: service.ErrRecipientNotFound, wantCode: http.StatusBadRequest},
		{name: "self transfer", err: service.ErrSelfTransfer, wantCode: http.StatusBadRequest},
		{name: "insufficient funds", err: service.ErrInsufficientFunds, wantCode: http.StatusBadRequest},
		{name: "storage failure", err: service.ErrTransferFailed, wantCode: http.StatusInternalServerError},
		{name: "unknown failure", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseIdentity: &service.Identity{UserID: 1, Username: "misiu1", Role: models.RoleUser}}
			s := &service.Service{Authorization: auth, Ledger: &mockLedger{transferErr: tc.err}, Directory: &mockDirectory{}}
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/transfer", `{"toUsername":"misiu2","amount":300}`))

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestTransferHandler_MissingRecipientIsBadRequest(t *testing.T) {
	auth := &mockAuth{parseIdentity: &service.Identity{UserID: 1, Username: "misiu1", Role: models.RoleUser}}
	ledger := &mockLedger{}
	s := &service.Service{Authorization: auth, Ledger: ledger, Directory: &mockDirectory{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/transfer", `{"amount":300}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if ledger.transferCalls != 0 {
		t.Fatalf("ledger called despite invalid body")
	}
}

func TestAdjustHandler(t *testing.T) {
	adminIdentity := &service.Identity{UserID: 3, Username: "admin", Role: models.RoleAdmin}

	t.Run("success, negative allowed", func(t *testing.T) {
		auth := &mockAuth{parseIdentity: adminIdentity}
		ledger := &mockLedger{}
		s := &service.Service{Authorization: auth, Ledger: ledger, Directory: &mockDirectory{}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/admin/adjust", `{"username":"misiu2","newBalance":-50}`))

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if ledger.lastAdjustUser != "misiu2" || ledger.lastNewBalance != -50 {
			t.Fatalf("ledger called with %q/%d", ledger.lastAdjustUser, ledger.lastNewBalance)
		}
	})

	t.Run("zero is a valid target", func(t *testing.T) {
		auth := &mockAuth{parseIdentity: adminIdentity}
		ledger := &mockLedger{}
		s := &service.Service{Authorization: auth, Ledger: ledger, Directory: &mockDirectory{}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/admin/adjust", `{"username":"misiu2","newBalance":0}`))

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if ledger.adjustCalls != 1 || ledger.lastNewBalance != 0 {
			t.Fatalf("ledger calls=%d balance=%d", ledger.adjustCalls, ledger.lastNewBalance)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		auth := &mockAuth{parseIdentity: adminIdentity}
		s := &service.Service{Authorization: auth, Ledger: &mockLedger{adjustErr: service.ErrUserNotFound}, Directory: &mockDirectory{}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/admin/adjust", `{"username":"ghost","newBalance":10}`))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, want 404", w.Code)
		}
	})

	t.Run("missing newBalance", func(t *testing.T) {
		auth := &mockAuth{parseIdentity: adminIdentity}
		ledger := &mockLedger{}
		s := &service.Service{Authorization: auth, Ledger: ledger, Directory: &mockDirectory{}}
		r := newTestRouter(s)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/admin/adjust", `{"username":"misiu2"}`))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
		if ledger.adjustCalls != 0 {
			t.Fatalf("ledger called despite invalid body")
		}
	})
}
