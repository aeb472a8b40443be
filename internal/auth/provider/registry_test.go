package provider

import (
	"context"
	"testing"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string              { return s.name }
func (s *stubProvider) AuthCodeURL(string) string { return "" }
func (s *stubProvider) ExchangeCode(context.Context, string) (*Token, error) {
	return nil, nil
}
func (s *stubProvider) FetchProfile(context.Context, *Token) (*auth.Profile, error) {
	return nil, nil
}

func TestRegistryLookup(t *testing.T) {
	ucl := &stubProvider{name: "ucl"}
	registry := NewRegistry(ucl)

	got, err := registry.Get("ucl")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != OAuthProvider(ucl) {
		t.Error("Get returned a different provider")
	}

	if _, err := registry.Get("github"); err == nil {
		t.Error("Get accepted an unregistered provider")
	}
}
