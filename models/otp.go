// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// OTP is a single-use password-reset code. Rows are deleted on
// verification or when found expired; there is no background sweep.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:10;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UserID    uint `gorm:"not null;index"`
	User      User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &OTP{})
}
