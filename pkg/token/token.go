// Package token implements a compact signed-token codec used for email
// verification and password-reset links. A token is the base64url-encoded
// JSON payload joined with a truncated HMAC-SHA256 signature. Expiry and
// single-use semantics live in the payload and its consumer, not here.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrMalformed        = errors.New("token: malformed token")
	ErrSignatureInvalid = errors.New("token: signature mismatch")
)

// signatureLen is the number of HMAC-SHA256 bytes kept in the token.
// 8 bytes keeps email links short while leaving forgery infeasible.
const signatureLen = 8

func sign(data []byte, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return h.Sum(nil)[:signatureLen]
}

// Generate encodes the payload as JSON and appends its signature.
func Generate[T any](payload T, secret string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(data) +
		"." +
		base64.RawURLEncoding.EncodeToString(sign(data, secret)), nil
}

// Parse verifies the signature in constant time and decodes the payload.
func Parse[T any](tok, secret string) (T, error) {
	var payload T

	payloadPart, sigPart, ok := strings.Cut(tok, ".")
	if !ok {
		return payload, ErrMalformed
	}

	data, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return payload, ErrMalformed
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return payload, ErrMalformed
	}

	if subtle.ConstantTimeCompare(sig, sign(data, secret)) != 1 {
		return payload, ErrSignatureInvalid
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, ErrMalformed
	}

	return payload, nil
}
