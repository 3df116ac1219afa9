// SPDX-License-Identifier: GPL-3.0-only

// Package subscriptions maintains the plan relationship for a user
// over time. Plan changes are additive: the current active row is
// deactivated and a new active row created, so the table keeps a full
// history while at most one row per user is ever active.
package subscriptions

import (
	"errors"
	"salestrack-server/models"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("user or plan not found")
	ErrNoActivePlan = errors.New("no active plan")
)

// PlanDuration is how long a paid assignment runs before lazy expiry.
const PlanDuration = 30 * 24 * time.Hour

// PlanView is the plan as presented to the subscriber, including the
// expiry of the subscription granting it.
type PlanView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	Description string     `json:"description"`
	Features    string     `json:"features"`
	Expiry      *time.Time `json:"expiry"`
}

// Create inserts a new active subscription row starting now. It never
// touches existing rows; callers that need the one-active invariant go
// through ChangePlan.
func Create(conn *gorm.DB, userID, planID uint, endDate *time.Time) (*models.Subscription, error) {
	subscription := models.Subscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: time.Now(),
		EndDate:   endDate,
		Status:    models.ActiveSubscription,
	}
	if err := conn.Create(&subscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

// DeactivateCurrent flips the user's active subscription to inactive
// and returns the now-inactive row, or (nil, nil) when the user has no
// active subscription. StartDate is left untouched.
func DeactivateCurrent(conn *gorm.DB, userID uint) (*models.Subscription, error) {
	var subscription models.Subscription
	err := conn.Where("user_id = ? AND status = ?", userID, models.ActiveSubscription).
		Order("start_date DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := conn.Model(&subscription).Update("status", models.InactiveSubscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

// ChangePlan assigns planID to userID: the current active subscription
// (if any) is deactivated and a new active one created with an end
// date 30 days out. Both steps run in one transaction so a failure in
// the second step cannot leave the user without any subscription.
// Returns ErrNotFound before any mutation when the user or plan does
// not exist.
func ChangePlan(conn *gorm.DB, userID, planID uint) (*models.Subscription, error) {
	if err := conn.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := conn.First(&models.Plan{}, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	endDate := time.Now().Add(PlanDuration)
	var subscription *models.Subscription
	err := conn.Transaction(func(tx *gorm.DB) error {
		if _, err := DeactivateCurrent(tx, userID); err != nil {
			return err
		}
		created, err := Create(tx, userID, planID, &endDate)
		if err != nil {
			return err
		}
		subscription = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// CurrentPlan returns the plan granted by the user's most recent
// active subscription. Expiry is lazy: an active row whose end date
// has passed reads as no plan, the row itself is not rewritten.
func CurrentPlan(conn *gorm.DB, userID uint) (*PlanView, error) {
	var subscription models.Subscription
	err := conn.Where("user_id = ? AND status = ?", userID, models.ActiveSubscription).
		Order("start_date DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	if subscription.EndDate != nil && subscription.EndDate.Before(time.Now()) {
		return nil, ErrNoActivePlan
	}

	var plan models.Plan
	if err := conn.First(&plan, subscription.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	return &PlanView{
		ID:          plan.ID,
		Name:        string(plan.Name),
		Price:       plan.Price,
		Currency:    plan.Currency,
		Description: plan.Description,
		Features:    plan.Features,
		Expiry:      subscription.EndDate,
	}, nil
}
