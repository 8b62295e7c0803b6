package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mirelabs/chatskins-backend/internal/rollback"
	"github.com/mirelabs/chatskins-backend/pkg/types"
)

func TestRollbackRunReportsCounts(t *testing.T) {
	registry := rollback.NewRegistry(nil, nil)
	if err := registry.Register(rollback.Handler{Name: "ok", Run: func(context.Context, string, []rollback.Message, []string) error {
		return nil
	}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	handler := RollbackRun(registry, nil)
	body := strings.NewReader(`{"chat_id":"chat-1","deleted_messages":[{"id":"m1","type":"friend_request"}]}`)
	r := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/rollback/run", body))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 but got %d: %s", w.Code, w.Body.String())
	}
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	report := envelope.Data.(map[string]any)
	if report["succeeded"].(float64) != 1 || report["total"].(float64) != 1 {
		t.Fatalf("unexpected report %v", report)
	}
}

func TestRollbackRunValidatesBody(t *testing.T) {
	handler := RollbackRun(rollback.NewRegistry(nil, nil), nil)

	body := strings.NewReader(`{"deleted_messages":[]}`)
	r := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/rollback/run", body))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 but got %d", w.Code)
	}
}
