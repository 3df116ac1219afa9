// SPDX-License-Identifier: GPL-3.0-only

// Package stats computes the dashboard KPIs and statistics series.
// Scalars are aggregated in SQL; bucketed series scan the filtered
// rows and aggregate in Go so the results are identical across the
// sqlite, mysql and postgres dialects. Soft-deleted products are
// excluded everywhere by gorm's deleted_at clause.
package stats

import (
	"errors"
	"math"
	"salestrack-server/commons"
	"salestrack-server/models"
	"time"

	"gorm.io/gorm"
)

// ProductRef identifies a product in a KPI payload.
type ProductRef struct {
	ID          uint   `json:"id"`
	ProductName string `json:"productName"`
}

// ProfitProduct is a row of the top-profit-products KPI.
type ProfitProduct struct {
	ID              uint     `json:"id"`
	ProductName     string   `json:"productName"`
	ProductCategory string   `json:"productCategory"`
	ProductPrice    float64  `json:"productPrice"`
	Quantity        int      `json:"quantity"`
	SellingPrice    float64  `json:"sellingPrice"`
	Ratings         *float64 `json:"ratings"`
	SoldDate        string   `json:"soldDate"`
	Profit          float64  `json:"profit"`
}

func userScope(conn *gorm.DB, userID uint) *gorm.DB {
	return conn.Model(&models.Product{}).Where("user_id = ?", userID)
}

func sumScalar(conn *gorm.DB, userID uint, expr string) (float64, error) {
	var v float64
	err := userScope(conn, userID).Select(expr).Scan(&v).Error
	return v, err
}

func TotalSales(conn *gorm.DB, userID uint) (float64, error) {
	return sumScalar(conn, userID, "COALESCE(SUM(selling_price * quantity), 0)")
}

func TotalProfit(conn *gorm.DB, userID uint) (float64, error) {
	return sumScalar(conn, userID, "COALESCE(SUM((selling_price - product_price) * quantity), 0)")
}

func AvgRating(conn *gorm.DB, userID uint) (float64, error) {
	var v float64
	err := userScope(conn, userID).
		Where("ratings IS NOT NULL").
		Select("COALESCE(AVG(ratings), 0)").Scan(&v).Error
	return v, err
}

func AvgDiscount(conn *gorm.DB, userID uint) (float64, error) {
	var v float64
	err := userScope(conn, userID).
		Where("discounts IS NOT NULL").
		Select("COALESCE(AVG(discounts), 0)").Scan(&v).Error
	return v, err
}

func TotalOrders(conn *gorm.DB, userID uint) (int64, error) {
	var n int64
	err := userScope(conn, userID).Count(&n).Error
	return n, err
}

func TotalQuantity(conn *gorm.DB, userID uint) (int64, error) {
	var v int64
	err := userScope(conn, userID).Select("COALESCE(SUM(quantity), 0)").Scan(&v).Error
	return v, err
}

func HighestSellingProduct(conn *gorm.DB, userID uint) (*ProductRef, error) {
	return topProductBy(conn, userID, "(selling_price * quantity) DESC")
}

func HighestProfitProduct(conn *gorm.DB, userID uint) (*ProductRef, error) {
	return topProductBy(conn, userID, "((selling_price - product_price) * quantity) DESC")
}

func topProductBy(conn *gorm.DB, userID uint, order string) (*ProductRef, error) {
	var product models.Product
	err := conn.Where("user_id = ?", userID).Order(order).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ProductRef{ID: product.ID, ProductName: commons.Capitalize(product.ProductName)}, nil
}

func TopProfitProducts(conn *gorm.DB, userID uint, limit int) ([]ProfitProduct, error) {
	var products []models.Product
	err := conn.Where("user_id = ?", userID).
		Order("((selling_price - product_price) * quantity) DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ProfitProduct, 0, len(products))
	for _, p := range products {
		soldDate := ""
		if p.SoldDate != nil {
			soldDate = p.SoldDate.Format("2006-01-02")
		}
		rows = append(rows, ProfitProduct{
			ID:              p.ID,
			ProductName:     commons.Capitalize(p.ProductName),
			ProductCategory: p.ProductCategory,
			ProductPrice:    p.ProductPrice,
			Quantity:        p.Quantity,
			SellingPrice:    p.SellingPrice,
			Ratings:         p.Ratings,
			SoldDate:        soldDate,
			Profit:          p.Profit(),
		})
	}
	return rows, nil
}

// ProfitMargin is total profit over total sales as a percentage,
// rounded to two decimals. Zero when there are no sales.
func ProfitMargin(conn *gorm.DB, userID uint) (float64, error) {
	sales, err := TotalSales(conn, userID)
	if err != nil {
		return 0, err
	}
	if sales == 0 {
		return 0, nil
	}
	profit, err := TotalProfit(conn, userID)
	if err != nil {
		return 0, err
	}
	return round2(profit / sales * 100), nil
}

func AvgOrderValue(conn *gorm.DB, userID uint) (float64, error) {
	sales, err := TotalSales(conn, userID)
	if err != nil {
		return 0, err
	}
	orders, err := TotalOrders(conn, userID)
	if err != nil {
		return 0, err
	}
	if orders == 0 {
		return 0, nil
	}
	return round2(sales / float64(orders)), nil
}

// TopCategory is the category with the highest sales value, or ""
// when the user has no products.
func TopCategory(conn *gorm.DB, userID uint) (string, error) {
	var row struct {
		ProductCategory string
	}
	err := userScope(conn, userID).
		Select("product_category, SUM(selling_price * quantity) AS total_sales").
		Group("product_category").
		Order("total_sales DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", err
	}
	return row.ProductCategory, nil
}

// RevenueGrowth compares this calendar month's sales to last month's,
// as a percentage. Zero when last month had no sales.
func RevenueGrowth(conn *gorm.DB, userID uint) (float64, error) {
	now := time.Now()
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)

	thisMonth, err := salesBetween(conn, userID, startOfThisMonth, now)
	if err != nil {
		return 0, err
	}
	lastMonth, err := salesBetween(conn, userID, startOfLastMonth, startOfThisMonth)
	if err != nil {
		return 0, err
	}
	if lastMonth == 0 {
		return 0, nil
	}
	return round2((thisMonth - lastMonth) / lastMonth * 100), nil
}

func salesBetween(conn *gorm.DB, userID uint, start, end time.Time) (float64, error) {
	var v float64
	err := userScope(conn, userID).
		Where("sold_date >= ? AND sold_date < ?", start, end).
		Select("COALESCE(SUM(selling_price * quantity), 0)").Scan(&v).Error
	return v, err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
