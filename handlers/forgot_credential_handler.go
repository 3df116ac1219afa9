// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"salestrack-server/commons"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/models"
	"salestrack-server/notifications"
	"salestrack-server/otp"
	"salestrack-server/passwordcheck"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ForgotPasswordHandler godoc
// @Summary      Request a password reset code
// @Description  Emails a single-use 6-digit code to the account's address.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        forgotPasswordRequest  body  ForgotPasswordRequest  true  "Forgot password payload"
// @Success      200 {object} MessageResponse    "Reset code sent"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing email"
// @Failure      404 {object} echo.HTTPError     "Unknown email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/forgot-password [post]
func ForgotPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid forgot password payload:", err)
		return echo.ErrBadRequest
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	user := models.User{}
	if err := db.Conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("No account for forgot-password email.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "No account found for this email address",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	code, err := otp.Issue(db.Conn, user.ID)
	if err != nil {
		logger.Errorf("Failed to issue reset code: %v", err)
		return echo.ErrInternalServerError
	}

	go sendResetCode(user, code)

	logger.Info("Password reset code issued")
	return c.JSON(http.StatusOK, MessageResponse{Message: "A reset code has been sent to your email address"})
}

// VerifyOTPHandler godoc
// @Summary      Verify a password reset code
// @Description  Exchanges a valid code for a short-lived reset token.
// @Description  Codes are single use, valid or not once matched.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        verifyOTPRequest  body  VerifyOTPRequest  true  "OTP verification payload"
// @Success      200 {object} VerifyOTPResponse  "Code verified"
// @Failure      400 {object} echo.HTTPError     "Invalid or expired code"
// @Failure      404 {object} echo.HTTPError     "Unknown email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/verify-otp [post]
func VerifyOTPHandler(c echo.Context) error {
	logger := c.Logger()

	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid OTP verification payload:", err)
		return echo.ErrBadRequest
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if req.Code == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "code field is required",
		}
	}

	user := models.User{}
	if err := db.Conn.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("No account for OTP verification email.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "No account found for this email address",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := otp.Verify(db.Conn, user.ID, req.Code); err != nil {
		if errors.Is(err, otp.ErrInvalidOTP) {
			logger.Error("OTP verification failed.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid or expired code",
			}
		}
		logger.Errorf("Failed to verify OTP: %v", err)
		return echo.ErrInternalServerError
	}

	resetToken, err := crypto.CreateResetToken(user.Email)
	if err != nil {
		logger.Errorf("Failed to create reset token: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Reset code verified")
	return c.JSON(http.StatusOK, VerifyOTPResponse{
		Message:    "Code verified",
		ResetToken: resetToken,
	})
}

// ResetPasswordHandler godoc
// @Summary      Reset a password with a reset token
// @Description  Sets a new password for the account named by a valid
// @Description  reset token. Session tokens are not accepted here.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset payload"
// @Success      200 {object} MessageResponse    "Password reset"
// @Failure      400 {object} echo.HTTPError     "Invalid token or weak password"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/reset-password [post]
func ResetPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid password reset payload:", err)
		return echo.ErrBadRequest
	}

	if req.ResetToken == "" || req.NewPassword == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "reset_token and new_password fields are required",
		}
	}

	if req.NewPassword != req.ConfirmPassword {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "passwords do not match",
		}
	}

	email, err := crypto.VerifyResetToken(req.ResetToken)
	if err != nil {
		logger.Error("Reset token failed verification: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid or expired reset token",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	user := models.User{}
	if err := db.Conn.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Errorf("Reset token subject has no matching user: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid or expired reset token",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&user).Update("password", hash).Error; err != nil {
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password reset successfully")
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

func sendResetCode(user models.User, code string) {
	toName := user.FirstName + " " + user.LastName
	err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &toName,
		Subject:  "Your SalesTrack password reset code",
		Template: "otp_reset",
		Variables: map[string]any{
			"first_name":     user.FirstName,
			"otp_code":       code,
			"expiry_minutes": int(otp.TTL.Minutes()),
		},
	})
	if err != nil {
		commons.Logger.Errorf("Failed to send password reset email: %v", err)
	}
}
