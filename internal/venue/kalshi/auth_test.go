package kalshi

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func writeTestKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der := x509.MarshalPKCS1PrivateKey(key)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: der}

	path := filepath.Join(t.TempDir(), "kalshi-api-rsa")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestSigner_HeadersAreWellFormed(t *testing.T) {
	path := writeTestKey(t)
	signer, err := NewSigner("key-123", path)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	headers, err := signer.Headers("GET", "/trade-api/ws/v2")
	if err != nil {
		t.Fatalf("Headers: %v", err)
	}
	if headers["KALSHI-ACCESS-KEY"] != "key-123" {
		t.Fatalf("got key %q", headers["KALSHI-ACCESS-KEY"])
	}
	if headers["KALSHI-ACCESS-SIGNATURE"] == "" {
		t.Fatal("expected a non-empty signature")
	}
	if headers["KALSHI-ACCESS-TIMESTAMP"] == "" {
		t.Fatal("expected a non-empty timestamp")
	}
}
