// SPDX-License-Identifier: GPL-3.0-only

package stats

import (
	"path/filepath"
	"salestrack-server/models"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) (*gorm.DB, uint) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	user := models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "hash"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return conn, user.ID
}

func seedProducts(t *testing.T, conn *gorm.DB, userID uint) {
	t.Helper()
	rate := func(v float64) *float64 { return &v }
	day := func(s string) *time.Time {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			t.Fatalf("Bad test date %s: %v", s, err)
		}
		return &d
	}
	products := []models.Product{
		// revenue 100, profit 40
		{UserID: userID, ProductName: "widget", ProductCategory: "Tools", ProductPrice: 6, SellingPrice: 10, Quantity: 10, Ratings: rate(4), SoldDate: day("2026-03-02")},
		// revenue 60, profit 30
		{UserID: userID, ProductName: "gizmo", ProductCategory: "Toys", ProductPrice: 10, SellingPrice: 20, Quantity: 3, Ratings: rate(5), SoldDate: day("2026-03-15")},
		// revenue 40, profit 8
		{UserID: userID, ProductName: "widget", ProductCategory: "Tools", ProductPrice: 8, SellingPrice: 10, Quantity: 4, SoldDate: day("2026-04-01")},
	}
	for i := range products {
		if err := conn.Create(&products[i]).Error; err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}
}

func TestScalarKPIs(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	sales, err := TotalSales(conn, userID)
	if err != nil {
		t.Fatalf("TotalSales failed: %v", err)
	}
	if sales != 200 {
		t.Errorf("Expected total sales 200, got %v", sales)
	}

	profit, err := TotalProfit(conn, userID)
	if err != nil {
		t.Fatalf("TotalProfit failed: %v", err)
	}
	if profit != 78 {
		t.Errorf("Expected total profit 78, got %v", profit)
	}

	orders, err := TotalOrders(conn, userID)
	if err != nil {
		t.Fatalf("TotalOrders failed: %v", err)
	}
	if orders != 3 {
		t.Errorf("Expected 3 orders, got %d", orders)
	}

	quantity, err := TotalQuantity(conn, userID)
	if err != nil {
		t.Fatalf("TotalQuantity failed: %v", err)
	}
	if quantity != 17 {
		t.Errorf("Expected quantity 17, got %d", quantity)
	}

	rating, err := AvgRating(conn, userID)
	if err != nil {
		t.Fatalf("AvgRating failed: %v", err)
	}
	if rating != 4.5 {
		t.Errorf("Expected avg rating 4.5, got %v", rating)
	}

	margin, err := ProfitMargin(conn, userID)
	if err != nil {
		t.Fatalf("ProfitMargin failed: %v", err)
	}
	if margin != 39 {
		t.Errorf("Expected profit margin 39, got %v", margin)
	}
}

func TestScalarKPIsEmpty(t *testing.T) {
	conn, userID := openTestDB(t)

	sales, err := TotalSales(conn, userID)
	if err != nil {
		t.Fatalf("TotalSales failed: %v", err)
	}
	if sales != 0 {
		t.Errorf("Expected 0 sales for empty user, got %v", sales)
	}

	top, err := HighestSellingProduct(conn, userID)
	if err != nil {
		t.Fatalf("HighestSellingProduct failed: %v", err)
	}
	if top != nil {
		t.Errorf("Expected nil for empty user, got %+v", top)
	}

	margin, err := ProfitMargin(conn, userID)
	if err != nil {
		t.Fatalf("ProfitMargin failed: %v", err)
	}
	if margin != 0 {
		t.Errorf("Expected 0 margin for empty user, got %v", margin)
	}
}

func TestHighestProducts(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	selling, err := HighestSellingProduct(conn, userID)
	if err != nil {
		t.Fatalf("HighestSellingProduct failed: %v", err)
	}
	if selling == nil || selling.ProductName != "Widget" {
		t.Errorf("Expected Widget as highest seller, got %+v", selling)
	}

	profit, err := HighestProfitProduct(conn, userID)
	if err != nil {
		t.Fatalf("HighestProfitProduct failed: %v", err)
	}
	if profit == nil || profit.ProductName != "Widget" {
		t.Errorf("Expected Widget as highest profit, got %+v", profit)
	}
}

func TestTopCategory(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	category, err := TopCategory(conn, userID)
	if err != nil {
		t.Fatalf("TopCategory failed: %v", err)
	}
	if category != "Tools" {
		t.Errorf("Expected Tools, got %q", category)
	}
}

func TestSalesTrendBucketsByMonth(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	trend, err := SalesTrend(conn, userID, PeriodAll)
	if err != nil {
		t.Fatalf("SalesTrend failed: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("Expected 2 months, got %d", len(trend))
	}
	if trend[0].Month != "2026-03" || trend[0].Sales != 160 || trend[0].Profit != 70 {
		t.Errorf("Unexpected first bucket: %+v", trend[0])
	}
	if trend[1].Month != "2026-04" || trend[1].Sales != 40 || trend[1].Profit != 8 {
		t.Errorf("Unexpected second bucket: %+v", trend[1])
	}
}

func TestCategoryDistribution(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	rows, err := CategoryDistribution(conn, userID, PeriodAll)
	if err != nil {
		t.Fatalf("CategoryDistribution failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(rows))
	}
	if rows[0].Category != "Tools" || rows[0].Value != 140 {
		t.Errorf("Unexpected Tools row: %+v", rows[0])
	}
	if rows[1].Category != "Toys" || rows[1].Value != 60 {
		t.Errorf("Unexpected Toys row: %+v", rows[1])
	}
}

func TestTopProducts(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	rows, err := TopProducts(conn, userID, 5)
	if err != nil {
		t.Fatalf("TopProducts failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(rows))
	}
	if rows[0].ProductName != "Widget" || rows[0].Quantity != 14 {
		t.Errorf("Unexpected top product: %+v", rows[0])
	}
}

func TestSoftDeletedProductsExcluded(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	if err := conn.Where("product_name = ?", "gizmo").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("Failed to soft delete: %v", err)
	}

	sales, err := TotalSales(conn, userID)
	if err != nil {
		t.Fatalf("TotalSales failed: %v", err)
	}
	if sales != 140 {
		t.Errorf("Expected soft-deleted rows excluded (140), got %v", sales)
	}
}

func TestMonthlySummaryZeroFills(t *testing.T) {
	conn, userID := openTestDB(t)
	seedProducts(t, conn, userID)

	rows, err := Summary(conn, userID, "2026-03")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(rows) != 31 {
		t.Fatalf("Expected 31 days for March, got %d", len(rows))
	}
	if rows[1].Date != "2026-03-02" || rows[1].Sales != 100 {
		t.Errorf("Unexpected March 2nd entry: %+v", rows[1])
	}
	if rows[0].Sales != 0 || rows[0].Profit != 0 {
		t.Errorf("Expected zero-filled first day, got %+v", rows[0])
	}
}
