package model

import (
	"strings"
	"testing"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 400, `{"message":"Compte bloqué"}`, "Compte bloqué"},
		{"error field", 403, `{"error":"Accès refusé"}`, "Accès refusé"},
		{"message wins over error", 400, `{"message":"m","error":"e"}`, "m"},
		{"plain text body", 500, "database unavailable", "database unavailable"},
		{"empty body", 502, "", "HTTP 502"},
		{"json without known fields", 404, `{"detail":"x"}`, "HTTP 404"},
		{"blank message falls through", 400, `{"message":"  "}`, "HTTP 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewAPIError(tt.status, []byte(tt.body))
			if e.Message != tt.want {
				t.Errorf("Message = %q, want %q", e.Message, tt.want)
			}
			if e.Status != tt.status {
				t.Errorf("Status = %d, want %d", e.Status, tt.status)
			}
			if string(e.Payload) != tt.body {
				t.Errorf("Payload not preserved: %q", e.Payload)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	withStatus := &APIError{Status: 401, Message: "no"}
	if !strings.Contains(withStatus.Error(), "HTTP 401") {
		t.Errorf("expected status in message, got %q", withStatus.Error())
	}

	network := &APIError{Message: "connection refused"}
	if strings.Contains(network.Error(), "HTTP") {
		t.Errorf("status 0 should not mention HTTP, got %q", network.Error())
	}
}
