package config

import "testing"

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://localhost:8081", "http://localhost:8081"},
		{"http://localhost:8081/", "http://localhost:8081"},
		{"  http://api.example.com//  ", "http://api.example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeBaseURL(tt.input); got != tt.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/", ""},
		{"api", "/api"},
		{"/api", "/api"},
		{"/api/", "/api"},
		{"  /api  ", "/api"},
	}
	for _, tt := range tests {
		if got := NormalizePrefix(tt.input); got != tt.want {
			t.Errorf("NormalizePrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAPIRoot(t *testing.T) {
	c := &Config{APIBaseURL: "http://localhost:8081", APIPrefix: "/api"}
	if got := c.APIRoot(); got != "http://localhost:8081/api" {
		t.Errorf("APIRoot = %q", got)
	}

	noPrefix := &Config{APIBaseURL: "http://localhost:8081", APIPrefix: ""}
	if got := noPrefix.APIRoot(); got != "http://localhost:8081" {
		t.Errorf("APIRoot without prefix = %q", got)
	}
}
