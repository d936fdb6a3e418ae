// Package kalshi implements venue.CatalogClient, venue.OrderBookClient,
// and an authenticated realtime stream client against Kalshi's trade API.
package kalshi

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Signer produces the RSA-PSS (SHA-256) signature Kalshi requires on every
// REST and WebSocket request, over the string "{timestamp}{method}{path}".
type Signer struct {
	keyID string
	privateKey *rsa.PrivateKey
}

// NewSigner loads the private key from a PEM file. KALSHI_API_ID names the
// key id sent in the KALSHI-ACCESS-KEY header.
func NewSigner(keyID, privateKeyPath string) (*Signer, error) {
	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("kalshi: read private key: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("kalshi: no PEM block in %s", privateKeyPath)
	}

	key, err := parseRSAPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("kalshi: parse private key: %w", err)
	}

	return &Signer{keyID: keyID, privateKey: key}, nil
}

func parseRSAPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return rsaKey, nil
}

// Headers returns the three KALSHI-ACCESS-* headers for one request.
func (s *Signer) Headers(method, path string) (map[string]string, error) {
	tsMillis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	payload := tsMillis + method + path

	digest := sha256.Sum256([]byte(payload))
	sig, err := rsa.SignPSS(rand.Reader, s.privateKey, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
	if err != nil {
		return nil, fmt.Errorf("kalshi: sign: %w", err)
	}

	return map[string]string{
		"KALSHI-ACCESS-KEY": s.keyID,
		"KALSHI-ACCESS-SIGNATURE": base64.StdEncoding.EncodeToString(sig),
		"KALSHI-ACCESS-TIMESTAMP": tsMillis,
	}, nil
}
