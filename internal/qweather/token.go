package qweather

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetime offsets required by the QWeather verifier.
const (
	tokenSkew = 30 * time.Second  // issued-at backdated to tolerate clock skew
	tokenTTL  = 900 * time.Second // 15 minute validity
)

// TokenSource issues short-lived EdDSA bearer tokens for the QWeather API.
// QWeather only accepts Ed25519 signatures; any other algorithm is rejected
// upstream on every request.
type TokenSource struct {
	projectID string
	keyID     string
	key       ed25519.PrivateKey
}

// NewTokenSource parses the PEM private key and returns a token source.
// Keys pasted through environment variables often carry literal "\n"
// sequences; those are normalized before parsing. A key that does not parse
// to an Ed25519 private key yields a CredentialError.
func NewTokenSource(projectID, keyID, privateKeyPEM string) (*TokenSource, error) {
	pemData := strings.ReplaceAll(privateKeyPEM, `\n`, "\n")

	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, &CredentialError{Reason: "private key is not valid PEM"}
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, &CredentialError{Reason: "failed to parse PKCS#8 private key", Err: err}
	}

	edKey, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, &CredentialError{Reason: "private key is not an Ed25519 key"}
	}

	return &TokenSource{
		projectID: projectID,
		keyID:     keyID,
		key:       edKey,
	}, nil
}

// Token signs a fresh bearer token valid from now-30s until now+900s.
// The kid header lets the verifier select the matching public key.
func (s *TokenSource) Token(now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": s.projectID,
		"iat": now.Add(-tokenSkew).Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", &CredentialError{Reason: "failed to sign token", Err: err}
	}
	return signed, nil
}
