// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/models"
	"salestrack-server/passwordcheck"
	"salestrack-server/subscriptions"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SignupHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account on the free plan.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      201 {object} SignupResponse 	 "Signup successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or invalid fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate user"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/signup [post]
func SignupHandler(c echo.Context) error {
	logger := c.Logger()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid signup request payload:", err)
		return echo.ErrBadRequest
	}

	if err := validateName("first_name", req.FirstName); err != nil {
		logger.Error("First name validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	if err := validateName("last_name", req.LastName); err != nil {
		logger.Error("Last name validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		logger.Error("Email validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	phone, err := validatePhone(req.Phone)
	if err != nil {
		logger.Error("Phone validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	if req.Password != req.ConfirmPassword {
		logger.Error("Password confirmation mismatch.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "passwords do not match",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	count := db.Conn.Where("email = ?", email).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Error("This email is already registered.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This email is already registered, please try another one.",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     phone,
		Password:  hash,
	}

	err = db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		freePlan := models.Plan{}
		if err := tx.Where("name = ?", models.FreePlan).First(&freePlan).Error; err != nil {
			return err
		}

		_, err := subscriptions.Create(tx, user.ID, freePlan.ID, nil)
		return err
	})
	if err != nil {
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("User signed up successfully")
	return c.JSON(http.StatusCreated, SignupResponse{Message: "Signup successful"})
}
