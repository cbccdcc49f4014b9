// Package util provides small shared helpers.
package util

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// TokenLength is the fixed length of registration tokens. It matches the
// character count of 32 url-safe base64 bytes.
const TokenLength = 43

// GenerateToken produces an unguessable token of exactly TokenLength
// characters drawn from [A-Za-z0-9].
//
// Url-safe base64 also emits '-' and '_', which are easy to misread and
// collide with URL path handling on some clients. Rather than truncating or
// substituting, any such characters are stripped and fresh random output is
// drawn until the full length is satisfied.
func GenerateToken() (string, error) {
	var sb strings.Builder
	sb.Grow(TokenLength)

	buf := make([]byte, 32)
	for sb.Len() < TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}

		chunk := base64.RawURLEncoding.EncodeToString(buf)
		chunk = strings.ReplaceAll(chunk, "-", "")
		chunk = strings.ReplaceAll(chunk, "_", "")

		if remaining := TokenLength - sb.Len(); len(chunk) > remaining {
			chunk = chunk[:remaining]
		}
		sb.WriteString(chunk)
	}

	return sb.String(), nil
}
