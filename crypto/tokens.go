// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"errors"
	"fmt"
	"salestrack-server/commons"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A session token is never accepted on the reset path
// and vice versa: each verifier checks the purpose claim exactly.
const (
	PurposeSession = "session"
	PurposeReset   = "reset"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

func signingKey() ([]byte, error) {
	secret := commons.GetEnv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	return []byte(secret), nil
}

// SessionTokenTTL reads SESSION_TOKEN_TTL_MINUTES, defaulting to 30
// minutes. Reset tokens get a much shorter window, see ResetTokenTTL.
func SessionTokenTTL() time.Duration {
	return ttlFromEnv("SESSION_TOKEN_TTL_MINUTES", 30)
}

func ResetTokenTTL() time.Duration {
	return ttlFromEnv("RESET_TOKEN_TTL_MINUTES", 15)
}

func ttlFromEnv(key string, fallbackMinutes int) time.Duration {
	if v := commons.GetEnv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return time.Duration(i) * time.Minute
		}
	}
	return time.Duration(fallbackMinutes) * time.Minute
}

// CreateAccessToken mints a signed session token with the user's email
// as subject.
func CreateAccessToken(email string, ttl time.Duration) (string, error) {
	return createToken(email, PurposeSession, ttl)
}

// CreateResetToken mints a short-lived token accepted only by
// VerifyResetToken.
func CreateResetToken(email string) (string, error) {
	return createToken(email, PurposeReset, ResetTokenTTL())
}

func createToken(email, purpose string, ttl time.Duration) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     email,
		"purpose": purpose,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString(key)
}

// VerifyAccessToken returns the subject email of a valid session
// token. Signature, expiry, subject and purpose are all checked;
// every failure collapses into ErrInvalidToken so callers cannot leak
// which part was wrong.
func VerifyAccessToken(tokenString string) (string, error) {
	return verifyToken(tokenString, PurposeSession)
}

// VerifyResetToken returns the subject email of a valid reset token.
func VerifyResetToken(tokenString string) (string, error) {
	return verifyToken(tokenString, PurposeReset)
}

func verifyToken(tokenString, purpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey()
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return "", ErrInvalidToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
