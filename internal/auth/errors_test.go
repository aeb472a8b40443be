package auth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFlowErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  *FlowError
		want int
	}{
		{"invalid state", ErrInvalidState(), http.StatusBadRequest},
		{"access denied", ErrAccessDenied(), http.StatusForbidden},
		{"missing code", ErrMissingCode(), http.StatusBadRequest},
		{"token exchange", ErrTokenExchange(500), http.StatusBadRequest},
		{"no access token", ErrNoAccessToken(), http.StatusBadRequest},
		{"profile fetch", ErrProfileFetch(400), http.StatusBadRequest},
		{"not eligible", ErrNotEligible(), http.StatusForbidden},
		{"no email", ErrNoEmail(), http.StatusBadRequest},
		{"reconciliation", ErrReconciliation(errors.New("x")), http.StatusInternalServerError},
		{"credential mint", ErrCredentialMint(errors.New("x")), http.StatusInternalServerError},
		{"network", ErrNetwork(errors.New("x")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.want {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.want)
			}
			if tt.err.Message == "" {
				t.Error("public message must not be empty")
			}
		})
	}
}

func TestUpstreamStatusCarried(t *testing.T) {
	if got := ErrTokenExchange(503).UpstreamStatus; got != 503 {
		t.Errorf("UpstreamStatus = %d, want 503", got)
	}
	if got := ErrProfileFetch(404).UpstreamStatus; got != 404 {
		t.Errorf("UpstreamStatus = %d, want 404", got)
	}
}

func TestAsFlowError(t *testing.T) {
	fe := ErrAccessDenied()
	if got := AsFlowError(fe); got != fe {
		t.Error("AsFlowError must return the typed error unchanged")
	}

	wrapped := fmt.Errorf("outer: %w", ErrNoEmail())
	if got := AsFlowError(wrapped); got.Kind != KindNoEmail {
		t.Errorf("Kind = %s, want no email through wrapping", got.Kind)
	}

	plain := errors.New("boom")
	got := AsFlowError(plain)
	if got.Kind != KindUnexpected || got.Status != http.StatusInternalServerError {
		t.Errorf("plain error mapped to %+v", got)
	}
	if !errors.Is(got, plain) {
		t.Error("cause must be preserved")
	}
}

func TestProfileNormalize(t *testing.T) {
	p := &Profile{Provider: "ucl", Email: "a@ucl.ac.uk"}
	p.Normalize()

	if p.FullName != "UCL Student" || p.Department != "Unknown" || p.UPI != "unknown" || p.TokenScope != "unknown" {
		t.Errorf("Normalize = %+v", p)
	}
	if p.Email != "a@ucl.ac.uk" {
		t.Error("Normalize must not touch email")
	}

	filled := &Profile{FullName: "X", Department: "Y", UPI: "Z", TokenScope: "s"}
	filled.Normalize()
	if filled.FullName != "X" || filled.Department != "Y" || filled.UPI != "Z" || filled.TokenScope != "s" {
		t.Error("Normalize must not overwrite present fields")
	}
}
