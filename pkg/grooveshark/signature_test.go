package grooveshark

import (
	"testing"
)

func TestCalculateSignature(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		secret string
		want   string
	}{
		{
			name:   "rfc 2104 style vector",
			body:   "The quick brown fox jumps over the lazy dog",
			secret: "key",
			want:   "80070713463e7749b90c2dc24911e275",
		},
		{
			name:   "empty body and key",
			body:   "",
			secret: "",
			want:   "74e6f7298a9c2d168935f58c001bad88",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateSignature([]byte(tt.body), tt.secret)
			if got != tt.want {
				t.Errorf("expected signature %q, got %q", tt.want, got)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"method":"getCountry","parameters":{},"header":{"wsKey":"k"}}`)
	sig := calculateSignature(body, "s3cret")

	if !VerifySignature(body, "s3cret", sig) {
		t.Error("expected signature to verify")
	}
	if VerifySignature(body, "other", sig) {
		t.Error("expected signature with wrong secret to fail")
	}
	if VerifySignature(append(body, ' '), "s3cret", sig) {
		t.Error("expected signature over modified body to fail")
	}
	if VerifySignature(body, "s3cret", "not-hex") {
		t.Error("expected malformed signature to fail")
	}
}
