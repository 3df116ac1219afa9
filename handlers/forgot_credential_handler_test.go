// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/models"
	"testing"

	"github.com/labstack/echo/v4"
)

func resetTestServer() *echo.Echo {
	e := echo.New()
	e.POST("/v1/auth/forgot-password", ForgotPasswordHandler)
	e.POST("/v1/auth/verify-otp", VerifyOTPHandler)
	e.POST("/v1/auth/reset-password", ResetPasswordHandler)
	e.POST("/v1/auth/login", LoginHandler)
	return e
}

func TestPasswordResetFlow(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := resetTestServer()

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword("OriginalPassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		FirstName: "Reset",
		LastName:  "User",
		Email:     "reset@example.com",
		Phone:     "+12025550134",
		Password:  hash,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	rec := doJSON(t, e, http.MethodPost, "/v1/auth/forgot-password",
		`{"email": "nobody@example.com"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/auth/forgot-password",
		`{"email": "reset@example.com"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on forgot-password, got %d: %s", rec.Code, rec.Body.String())
	}

	entry := models.OTP{}
	if err := db.Conn.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
		t.Fatalf("expected an OTP row: %v", err)
	}

	wrongCode := "000000"
	if entry.Code == wrongCode {
		wrongCode = "000001"
	}
	rec = doJSON(t, e, http.MethodPost, "/v1/auth/verify-otp",
		fmt.Sprintf(`{"email": "reset@example.com", "code": %q}`, wrongCode), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on wrong code, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/auth/verify-otp",
		fmt.Sprintf(`{"email": "reset@example.com", "code": %q}`, entry.Code), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on correct code, got %d: %s", rec.Code, rec.Body.String())
	}

	var verified VerifyOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &verified); err != nil {
		t.Fatalf("failed to unmarshal verify response: %v", err)
	}
	if verified.ResetToken == "" {
		t.Fatal("expected a reset token")
	}

	// Codes are single use.
	rec = doJSON(t, e, http.MethodPost, "/v1/auth/verify-otp",
		fmt.Sprintf(`{"email": "reset@example.com", "code": %q}`, entry.Code), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on replayed code, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/auth/reset-password",
		fmt.Sprintf(`{"reset_token": %q, "new_password": "BrandNewPassword123", "confirm_password": "BrandNewPassword123"}`, verified.ResetToken), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on reset, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/auth/login",
		`{"email": "reset@example.com", "password": "OriginalPassword123"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old password to stop working, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/v1/auth/login",
		`{"email": "reset@example.com", "password": "BrandNewPassword123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login with new password, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := resetTestServer()

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword("OriginalPassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		FirstName: "Session",
		LastName:  "User",
		Email:     "session@example.com",
		Phone:     "+12025550134",
		Password:  hash,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	sessionToken, err := crypto.CreateAccessToken(user.Email, crypto.SessionTokenTTL())
	if err != nil {
		t.Fatalf("failed to create session token: %v", err)
	}

	rec := doJSON(t, e, http.MethodPost, "/v1/auth/reset-password",
		fmt.Sprintf(`{"reset_token": %q, "new_password": "BrandNewPassword123", "confirm_password": "BrandNewPassword123"}`, sessionToken), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected a session token to be rejected as reset token, got %d", rec.Code)
	}
}
