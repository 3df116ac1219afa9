// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type PlanName string

const (
	FreePlan    PlanName = "FREE"
	ProPlan     PlanName = "PRO"
	PremiumPlan PlanName = "PREMIUM"
)

type Plan struct {
	ID          uint     `gorm:"primaryKey"`
	Name        PlanName `gorm:"size:255;not null;default:'FREE';uniqueIndex"`
	Price       float64  `gorm:"not null;default:0"`
	Currency    string   `gorm:"size:10;not null;default:'USD'"`
	Description string   `gorm:"size:512"`
	// Comma-joined feature lines, split for presentation.
	Features  string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &Plan{})
}
