// SPDX-License-Identifier: GPL-3.0-only

package subscriptions

import (
	"path/filepath"
	"salestrack-server/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

func seedUserAndPlans(t *testing.T, conn *gorm.DB) (models.User, models.Plan, models.Plan) {
	t.Helper()
	user := models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "+14155550123", Password: "hash"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	free := models.Plan{Name: models.FreePlan, Price: 0}
	pro := models.Plan{Name: models.ProPlan, Price: 9.99}
	if err := conn.Create(&free).Error; err != nil {
		t.Fatalf("Failed to create free plan: %v", err)
	}
	if err := conn.Create(&pro).Error; err != nil {
		t.Fatalf("Failed to create pro plan: %v", err)
	}
	return user, free, pro
}

func countActive(t *testing.T, conn *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", userID, models.ActiveSubscription).
		Count(&n).Error; err != nil {
		t.Fatalf("Failed to count subscriptions: %v", err)
	}
	return n
}

func TestCreateIsAdditive(t *testing.T) {
	conn := openTestDB(t)
	user, free, pro := seedUserAndPlans(t, conn)

	if _, err := Create(conn, user.ID, free.ID, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := Create(conn, user.ID, pro.ID, nil); err != nil {
		t.Fatalf("Second Create failed: %v", err)
	}

	var total int64
	conn.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&total)
	if total != 2 {
		t.Errorf("Expected 2 rows, got %d", total)
	}
}

func TestDeactivateCurrent(t *testing.T) {
	conn := openTestDB(t)
	user, free, _ := seedUserAndPlans(t, conn)

	created, err := Create(conn, user.ID, free.ID, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deactivated, err := DeactivateCurrent(conn, user.ID)
	if err != nil {
		t.Fatalf("DeactivateCurrent failed: %v", err)
	}
	if deactivated == nil || deactivated.ID != created.ID {
		t.Fatalf("Expected the created row back, got %+v", deactivated)
	}

	if n := countActive(t, conn, user.ID); n != 0 {
		t.Errorf("Expected 0 active rows, got %d", n)
	}

	again, err := DeactivateCurrent(conn, user.ID)
	if err != nil {
		t.Fatalf("DeactivateCurrent failed: %v", err)
	}
	if again != nil {
		t.Errorf("Expected nil when no active subscription, got %+v", again)
	}
}

func TestChangePlanKeepsOneActiveRow(t *testing.T) {
	conn := openTestDB(t)
	user, free, pro := seedUserAndPlans(t, conn)

	first, err := Create(conn, user.ID, free.ID, nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	changed, err := ChangePlan(conn, user.ID, pro.ID)
	if err != nil {
		t.Fatalf("ChangePlan failed: %v", err)
	}
	if changed.PlanID != pro.ID {
		t.Errorf("Expected plan %d, got %d", pro.ID, changed.PlanID)
	}
	if changed.EndDate == nil {
		t.Fatal("Expected an end date on the new subscription")
	}
	remaining := time.Until(*changed.EndDate)
	if remaining < 29*24*time.Hour || remaining > 31*24*time.Hour {
		t.Errorf("Expected end date about 30 days out, got %v", remaining)
	}

	if n := countActive(t, conn, user.ID); n != 1 {
		t.Errorf("Expected exactly 1 active row, got %d", n)
	}

	var old models.Subscription
	if err := conn.First(&old, first.ID).Error; err != nil {
		t.Fatalf("Failed to reload first subscription: %v", err)
	}
	if old.Status != models.InactiveSubscription {
		t.Errorf("Expected prior row inactive, got status %d", old.Status)
	}
	if !old.StartDate.Equal(first.StartDate) {
		t.Errorf("Deactivation must not touch StartDate: %v != %v", old.StartDate, first.StartDate)
	}
}

func TestChangePlanUnknownUserOrPlan(t *testing.T) {
	conn := openTestDB(t)
	user, free, _ := seedUserAndPlans(t, conn)

	if _, err := Create(conn, user.ID, free.ID, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := ChangePlan(conn, 9999, free.ID); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
	if _, err := ChangePlan(conn, user.ID, 9999); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for unknown plan, got %v", err)
	}

	// Aborted calls must not have mutated anything.
	if n := countActive(t, conn, user.ID); n != 1 {
		t.Errorf("Expected the original active row untouched, got %d active", n)
	}
}

func TestCurrentPlan(t *testing.T) {
	conn := openTestDB(t)
	user, _, pro := seedUserAndPlans(t, conn)

	if _, err := CurrentPlan(conn, user.ID); err != ErrNoActivePlan {
		t.Errorf("Expected ErrNoActivePlan with no rows, got %v", err)
	}

	if _, err := ChangePlan(conn, user.ID, pro.ID); err != nil {
		t.Fatalf("ChangePlan failed: %v", err)
	}

	view, err := CurrentPlan(conn, user.ID)
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if view.Name != string(models.ProPlan) {
		t.Errorf("Expected PRO plan, got %s", view.Name)
	}
	if view.Expiry == nil {
		t.Error("Expected an expiry on the plan view")
	}
}

func TestCurrentPlanLazyExpiry(t *testing.T) {
	conn := openTestDB(t)
	user, free, _ := seedUserAndPlans(t, conn)

	past := time.Now().Add(-time.Hour)
	if _, err := Create(conn, user.ID, free.ID, &past); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := CurrentPlan(conn, user.ID); err != ErrNoActivePlan {
		t.Errorf("Expected ErrNoActivePlan for expired subscription, got %v", err)
	}

	// Lazy expiry is a read-time filter: the row itself stays active.
	var row models.Subscription
	if err := conn.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("Failed to reload subscription: %v", err)
	}
	if row.Status != models.ActiveSubscription {
		t.Errorf("Expected row status to remain active, got %d", row.Status)
	}
}
