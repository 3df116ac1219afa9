// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} LoginResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	newCrypto := crypto.NewCrypto()
	user := models.User{}
	err := db.Conn.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Credentials are incorrect, please check your email and password",
			}
		}

		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := newCrypto.VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Credentials are incorrect, please check your email and password",
		}
	}

	ttl := crypto.SessionTokenTTL()
	tokenString, err := crypto.CreateAccessToken(user.Email, ttl)
	if err != nil {
		logger.Errorf("Failed to create access token: %v", err)
		return echo.ErrInternalServerError
	}

	c.SetCookie(sessionCookie(tokenString, ttl))

	logger.Info("User logged in successfully")
	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    userPayload(user),
	})
}

// LogoutHandler godoc
// @Summary      Logout the current user
// @Description  Clears the session cookie. Stateless tokens remain
// @Description  valid until expiry, so clients must discard them too.
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse    "Logout successful"
// @Router       /v1/auth/logout [post]
func LogoutHandler(c echo.Context) error {
	cookie := sessionCookie("", 0)
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func userPayload(user models.User) UserPayload {
	return UserPayload{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}
