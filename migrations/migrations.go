// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"salestrack-server/models"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_seed_plans",
			Migrate: func(tx *gorm.DB) error {
				plans := []models.Plan{
					{
						Name:        models.FreePlan,
						Price:       0,
						Currency:    "USD",
						Description: "Get started with basic sales tracking",
						Features:    "Up to 50 products,Dashboard KPIs,Community support",
					},
					{
						Name:        models.ProPlan,
						Price:       9.99,
						Currency:    "USD",
						Description: "For growing sellers",
						Features:    "Unlimited products,Excel bulk import,Full statistics,Email support",
					},
					{
						Name:        models.PremiumPlan,
						Price:       19.99,
						Currency:    "USD",
						Description: "Everything, plus priority support",
						Features:    "Unlimited products,Excel bulk import,Full statistics,Priority support",
					},
				}

				for _, plan := range plans {
					if err := tx.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
						return fmt.Errorf("failed to create plan %s: %w", plan.Name, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "002_subscribe_existing_users_to_free_plan",
			Migrate: func(tx *gorm.DB) error {
				var users []models.User
				if err := tx.Find(&users).Error; err != nil {
					return fmt.Errorf("failed to fetch users: %w", err)
				}

				var freePlan models.Plan
				if err := tx.Where("name = ?", models.FreePlan).First(&freePlan).Error; err != nil {
					return fmt.Errorf("failed to fetch free plan: %w", err)
				}

				for _, user := range users {
					var subscription models.Subscription
					if err := tx.Where("user_id = ? AND status = ?", user.ID, models.ActiveSubscription).
						Attrs(models.Subscription{
							UserID:    user.ID,
							PlanID:    freePlan.ID,
							Status:    models.ActiveSubscription,
							StartDate: time.Now(),
						}).FirstOrCreate(&subscription).Error; err != nil {
						return fmt.Errorf("failed to create subscription for user %d: %w", user.ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
