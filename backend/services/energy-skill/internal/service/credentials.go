package service

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/blake2b"

	"energyskill/backend/services/energy-skill/internal/models"
)

// ErrNotLinked is returned when the event carries no access token.
var ErrNotLinked = errors.New("service: account not linked")

// Credentials hold the caller's bearer token for the duration of one invocation.
type Credentials struct {
	Token string
}

// AccountInfo identifies the linked account in logs without exposing the token.
type AccountInfo struct {
	ID        string
	ExpiresAt time.Time
}

// ExtractCredentials reads the linked access token from the event.
func ExtractCredentials(event models.Event) (Credentials, error) {
	token := strings.TrimSpace(event.Context.System.User.AccessToken)
	if token == "" {
		return Credentials{}, ErrNotLinked
	}
	return Credentials{Token: token}, nil
}

// Describe derives a log-safe account identifier. GivEnergy API keys are JWTs, so the subject
// claim is used when present; the signature is not checked since the upstream API does that.
// Other tokens are identified by a short blake2b fingerprint.
func (c Credentials) Describe() AccountInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err == nil {
		info := AccountInfo{}
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			info.ID = "sub:" + sub
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			info.ExpiresAt = exp.Time
		}
		if info.ID != "" {
			return info
		}
		info.ID = fingerprint(c.Token)
		return info
	}
	return AccountInfo{ID: fingerprint(c.Token)}
}

// Expired reports whether the token carries an expiry that has passed.
func (a AccountInfo) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

func fingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "key:" + hex.EncodeToString(sum[:8])
}
