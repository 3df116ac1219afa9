// SPDX-License-Identifier: GPL-3.0-only

// Package otp issues and verifies the single-use codes of the
// password-reset flow.
package otp

import (
	"errors"
	"salestrack-server/crypto"
	"salestrack-server/models"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidOTP covers wrong and expired codes alike; callers get no
// hint which one it was.
var ErrInvalidOTP = errors.New("invalid or expired OTP")

// TTL is how long an issued code stays verifiable.
const TTL = 5 * time.Minute

// Issue generates a fresh 6-digit code for the user and persists it
// with a 5 minute expiry. Previously issued codes for the user are
// discarded so only the latest one can verify.
func Issue(conn *gorm.DB, userID uint) (string, error) {
	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}

	if err := conn.Where("user_id = ?", userID).Delete(&models.OTP{}).Error; err != nil {
		return "", err
	}

	entry := models.OTP{
		UserID:    userID,
		Code:      code,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := conn.Create(&entry).Error; err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the code: a matching row is deleted whether it is
// still valid or already expired, so a code never verifies twice.
func Verify(conn *gorm.DB, userID uint, code string) error {
	var entry models.OTP
	err := conn.Where("user_id = ? AND code = ?", userID, code).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if err := conn.Delete(&entry).Error; err != nil {
		return err
	}

	if time.Now().After(entry.ExpiresAt) {
		return ErrInvalidOTP
	}
	return nil
}
