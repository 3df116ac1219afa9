// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"salestrack-server/passwordcheck"
	"salestrack-server/subscriptions"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler godoc
// @Summary      Get the authenticated user's profile
// @Description  Returns the user's details together with the current plan.
// @Tags         users
// @Produce      json
// @Success      200 {object} ProfileResponse    "Profile retrieved"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/profile [get]
func GetProfileHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	plan, err := subscriptions.CurrentPlan(db.Conn, user.ID)
	if err != nil && !errors.Is(err, subscriptions.ErrNoActivePlan) {
		logger.Errorf("Failed to load current plan: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		User: userPayload(*user),
		Plan: plan,
	})
}

// UpdateProfileHandler godoc
// @Summary      Update the authenticated user's profile
// @Description  Updates name, email and phone. Rejects an email already
// @Description  used by another account.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        updateProfileRequest  body  UpdateProfileRequest  true  "Profile update payload"
// @Success      200 {object} ProfileResponse    "Profile updated"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      409 {object} echo.HTTPError     "Email already in use"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/profile [put]
func UpdateProfileHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid profile update payload:", err)
		return echo.ErrBadRequest
	}

	if req.FirstName != "" {
		if err := validateName("first_name", req.FirstName); err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		user.FirstName = req.FirstName
	}

	if req.LastName != "" {
		if err := validateName("last_name", req.LastName); err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		user.LastName = req.LastName
	}

	if req.Email != "" {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
		}

		if email != user.Email {
			count := db.Conn.Where("email = ? AND id != ?", email, user.ID).First(&models.User{}).RowsAffected
			if count > 0 {
				logger.Error("Email already in use by another account.")
				return &echo.HTTPError{
					Code:    http.StatusConflict,
					Message: "This email is already registered, please try another one.",
				}
			}
			user.Email = email
		}
	}

	if req.Phone != "" {
		phone, err := validatePhone(req.Phone)
		if err != nil {
			return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		user.Phone = phone
	}

	if err := db.Conn.Save(user).Error; err != nil {
		logger.Errorf("Failed to update profile: %v", err)
		return echo.ErrInternalServerError
	}

	plan, err := subscriptions.CurrentPlan(db.Conn, user.ID)
	if err != nil && !errors.Is(err, subscriptions.ErrNoActivePlan) {
		logger.Errorf("Failed to load current plan: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Profile updated successfully")
	return c.JSON(http.StatusOK, ProfileResponse{
		User: userPayload(*user),
		Plan: plan,
	})
}

// ChangePasswordHandler godoc
// @Summary      Change the authenticated user's password
// @Description  Requires the current password before setting a new one.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Password change payload"
// @Success      200 {object} MessageResponse    "Password changed"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized or wrong current password"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/password [put]
func ChangePasswordHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid password change payload:", err)
		return echo.ErrBadRequest
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "old_password and new_password fields are required",
		}
	}

	if req.NewPassword != req.ConfirmPassword {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "passwords do not match",
		}
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.OldPassword, user.Password); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Current password is incorrect",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	hash, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(user).Update("password", hash).Error; err != nil {
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password changed successfully")
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}
