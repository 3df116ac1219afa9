// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

type SubscriptionStatus int

const (
	InactiveSubscription SubscriptionStatus = 0
	ActiveSubscription   SubscriptionStatus = 1
)

// Subscription links a user to a plan over a time window. Plan changes
// never overwrite rows: the current active row is flipped inactive and
// a new active row is created, so the table doubles as plan history.
// At most one row per user carries ActiveSubscription at any time.
type Subscription struct {
	ID        uint      `gorm:"primaryKey"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   *time.Time
	Status    SubscriptionStatus `gorm:"not null;default:1;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint `gorm:"not null;index"`
	User      User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PlanID    uint `gorm:"not null"`
	Plan      Plan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func init() {
	AllModels = append(AllModels, &Subscription{})
}
