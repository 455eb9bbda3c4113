// Package auth issues and verifies the signed, time-limited tokens
// used for login sessions, email confirmation, password reset, and
// email change. Verification is pure: it returns the embedded claim
// and never mutates state, so the check can be tested independently
// of the apply step that lives in the services layer.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rivalrockets/rivalrockets/internal/common"
)

// Purpose tags a token with the single flow it is valid for. A reset
// token presented to the confirmation flow fails the claim check.
type Purpose string

const (
	PurposeSession     Purpose = "session"
	PurposeConfirm     Purpose = "confirm"
	PurposeReset       Purpose = "reset"
	PurposeChangeEmail Purpose = "change_email"
)

// Claim is the payload embedded in a signed token.
type Claim struct {
	UserID   int64
	Purpose  Purpose
	NewEmail string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Purpose  string `json:"purpose"`
	NewEmail string `json:"new_email,omitempty"`
}

// Issuer signs and verifies tokens with a single server-wide HMAC
// secret, threaded in from configuration at construction time.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Issue signs the claim with the given validity duration.
func (i *Issuer) Issue(c Claim, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:   c.UserID,
		Purpose:  string(c.Purpose),
		NewEmail: c.NewEmail,
	})

	return token.SignedString(i.secret)
}

// Verify decodes and checks the token signature and expiry, returning
// the embedded claim. Failures are ordinary error values
// (common.ErrorTokenExpired, common.ErrorInvalidToken); nothing
// escapes this boundary as a panic.
func (i *Issuer) Verify(tokenString string) (*Claim, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrorTokenExpired
		}
		return nil, common.ErrorInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	return &Claim{
		UserID:   claims.UserID,
		Purpose:  Purpose(claims.Purpose),
		NewEmail: claims.NewEmail,
	}, nil
}
