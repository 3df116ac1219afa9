// SPDX-License-Identifier: GPL-3.0-only

package stats

import (
	"errors"
	"salestrack-server/commons"
	"salestrack-server/models"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Periods accepted by the statistics series.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// ErrBadPeriod rejects summary periods that are neither a rolling
// window nor a calendar month.
var ErrBadPeriod = errors.New("unsupported period")

type MonthPoint struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type CategoryRating struct {
	ProductCategory string  `json:"productCategory"`
	AvgRating       float64 `json:"avg_rating"`
}

type CategoryProfit struct {
	ProductCategory string  `json:"productCategory"`
	Profit          float64 `json:"profit"`
}

type TopProduct struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type DailyQuantity struct {
	SoldDate string `json:"soldDate"`
	Quantity int    `json:"quantity"`
}

type ProductProfit struct {
	ProductName string  `json:"productName"`
	Profit      float64 `json:"profit"`
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MarginPoint struct {
	Month        string  `json:"month"`
	Revenue      float64 `json:"revenue"`
	ProfitMargin float64 `json:"profit_margin"`
}

type CategoryMargin struct {
	Category     string  `json:"category"`
	ProfitMargin float64 `json:"profit_margin"`
}

type DayPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

func periodStart(period string, now time.Time) *time.Time {
	var start time.Time
	switch period {
	case PeriodDay:
		start = now.AddDate(0, 0, -1)
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = now.AddDate(0, 0, -30)
	case PeriodYear:
		start = now.AddDate(0, 0, -365)
	default:
		return nil
	}
	return &start
}

// periodProducts returns the user's products filtered to the period.
// Rows without a sold date are kept only for the unbounded period,
// matching SQL range filters which drop NULL dates.
func periodProducts(conn *gorm.DB, userID uint, period string) ([]models.Product, error) {
	query := conn.Where("user_id = ?", userID)
	if start := periodStart(period, time.Now()); start != nil {
		query = query.Where("sold_date >= ? AND sold_date <= ?", *start, time.Now())
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func monthKey(t time.Time) string { return t.Format("2006-01") }

// SalesTrend buckets sales and profit by calendar month.
func SalesTrend(conn *gorm.DB, userID uint, period string) ([]MonthPoint, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*MonthPoint{}
	for _, p := range products {
		if p.SoldDate == nil {
			continue
		}
		key := monthKey(*p.SoldDate)
		point, ok := byMonth[key]
		if !ok {
			point = &MonthPoint{Month: key}
			byMonth[key] = point
		}
		point.Sales += p.Revenue()
		point.Profit += p.Profit()
	}

	points := make([]MonthPoint, 0, len(byMonth))
	for _, point := range byMonth {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points, nil
}

// CategoryDistribution sums sales value per category.
func CategoryDistribution(conn *gorm.DB, userID uint, period string) ([]CategoryValue, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]float64{}
	for _, p := range products {
		byCategory[p.ProductCategory] += p.Revenue()
	}
	return sortedCategoryValues(byCategory), nil
}

// AvgRatings averages product ratings per category, ignoring unrated
// products.
func AvgRatings(conn *gorm.DB, userID uint, period string) ([]CategoryRating, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, p := range products {
		if p.Ratings == nil {
			continue
		}
		sums[p.ProductCategory] += *p.Ratings
		counts[p.ProductCategory]++
	}

	rows := make([]CategoryRating, 0, len(sums))
	for category, sum := range sums {
		rows = append(rows, CategoryRating{
			ProductCategory: category,
			AvgRating:       round2(sum / float64(counts[category])),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductCategory < rows[j].ProductCategory })
	return rows, nil
}

// ProfitPerCategory sums profit per category.
func ProfitPerCategory(conn *gorm.DB, userID uint, period string) ([]CategoryProfit, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]float64{}
	for _, p := range products {
		byCategory[p.ProductCategory] += p.Profit()
	}

	rows := make([]CategoryProfit, 0, len(byCategory))
	for category, profit := range byCategory {
		rows = append(rows, CategoryProfit{ProductCategory: category, Profit: profit})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductCategory < rows[j].ProductCategory })
	return rows, nil
}

// TopProducts ranks products by total quantity sold.
func TopProducts(conn *gorm.DB, userID uint, limit int) ([]TopProduct, error) {
	products, err := periodProducts(conn, userID, PeriodAll)
	if err != nil {
		return nil, err
	}

	byName := map[string]int{}
	for _, p := range products {
		byName[p.ProductName] += p.Quantity
	}

	rows := make([]TopProduct, 0, len(byName))
	for name, quantity := range byName {
		rows = append(rows, TopProduct{ProductName: commons.Capitalize(name), Quantity: quantity})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Quantity != rows[j].Quantity {
			return rows[i].Quantity > rows[j].Quantity
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// DailySales sums quantity sold per day.
func DailySales(conn *gorm.DB, userID uint, period string) ([]DailyQuantity, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	byDay := map[string]int{}
	for _, p := range products {
		if p.SoldDate == nil {
			continue
		}
		byDay[p.SoldDate.Format("2006-01-02")] += p.Quantity
	}

	rows := make([]DailyQuantity, 0, len(byDay))
	for day, quantity := range byDay {
		rows = append(rows, DailyQuantity{SoldDate: day, Quantity: quantity})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SoldDate < rows[j].SoldDate })
	return rows, nil
}

// ProfitPerProduct sums profit per product name, highest first.
func ProfitPerProduct(conn *gorm.DB, userID uint, period string) ([]ProductProfit, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	byName := map[string]float64{}
	for _, p := range products {
		byName[p.ProductName] += p.Profit()
	}

	rows := make([]ProductProfit, 0, len(byName))
	for name, profit := range byName {
		rows = append(rows, ProductProfit{ProductName: commons.Capitalize(name), Profit: profit})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Profit != rows[j].Profit {
			return rows[i].Profit > rows[j].Profit
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}

// TotalRevenue buckets revenue by calendar month.
func TotalRevenue(conn *gorm.DB, userID uint, period string) ([]MonthRevenue, error) {
	trend, err := SalesTrend(conn, userID, period)
	if err != nil {
		return nil, err
	}
	rows := make([]MonthRevenue, 0, len(trend))
	for _, point := range trend {
		rows = append(rows, MonthRevenue{Month: point.Month, Revenue: point.Sales})
	}
	return rows, nil
}

// RevenueProfitMarginTrend reports monthly revenue with the profit
// margin percentage for the month.
func RevenueProfitMarginTrend(conn *gorm.DB, userID uint, period string) ([]MarginPoint, error) {
	trend, err := SalesTrend(conn, userID, period)
	if err != nil {
		return nil, err
	}
	rows := make([]MarginPoint, 0, len(trend))
	for _, point := range trend {
		margin := 0.0
		if point.Sales > 0 {
			margin = round2(point.Profit / point.Sales * 100)
		}
		rows = append(rows, MarginPoint{Month: point.Month, Revenue: point.Sales, ProfitMargin: margin})
	}
	return rows, nil
}

// AvgProfitMarginPerCategory reports each category's profit margin
// percentage over the period.
func AvgProfitMarginPerCategory(conn *gorm.DB, userID uint, period string) ([]CategoryMargin, error) {
	products, err := periodProducts(conn, userID, period)
	if err != nil {
		return nil, err
	}

	revenue := map[string]float64{}
	profit := map[string]float64{}
	for _, p := range products {
		revenue[p.ProductCategory] += p.Revenue()
		profit[p.ProductCategory] += p.Profit()
	}

	rows := make([]CategoryMargin, 0, len(revenue))
	for category, rev := range revenue {
		margin := 0.0
		if rev > 0 {
			margin = round2(profit[category] / rev * 100)
		}
		rows = append(rows, CategoryMargin{Category: category, ProfitMargin: margin})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

// Summary serves the dashboard chart. period is either "week"/"month"
// for a rolling daily window, or "YYYY-MM" for one calendar month
// with every day present (zero-filled), discounts deducted.
func Summary(conn *gorm.DB, userID uint, period string) ([]DayPoint, error) {
	if year, month, ok := parseYearMonth(period); ok {
		return monthlySummary(conn, userID, year, month)
	}

	now := time.Now()
	var start time.Time
	switch period {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = now.AddDate(0, 0, -30)
	default:
		return nil, ErrBadPeriod
	}

	var products []models.Product
	err := conn.Where("user_id = ? AND sold_date >= ? AND sold_date <= ?", userID, start, now).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DayPoint{}
	for _, p := range products {
		if p.SoldDate == nil {
			continue
		}
		key := p.SoldDate.Format("2006-01-02")
		point, ok := byDay[key]
		if !ok {
			point = &DayPoint{Date: key}
			byDay[key] = point
		}
		point.Sales += p.Revenue()
		point.Profit += p.Profit()
	}

	rows := make([]DayPoint, 0, len(byDay))
	for _, point := range byDay {
		rows = append(rows, *point)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

func monthlySummary(conn *gorm.DB, userID uint, year int, month time.Month) ([]DayPoint, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var products []models.Product
	err := conn.Where("user_id = ? AND sold_date >= ? AND sold_date < ?", userID, start, end).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DayPoint{}
	for _, p := range products {
		if p.SoldDate == nil {
			continue
		}
		discount := 0.0
		if p.Discounts != nil {
			discount = *p.Discounts
		}
		key := p.SoldDate.Format("2006-01-02")
		point, ok := byDay[key]
		if !ok {
			point = &DayPoint{Date: key}
			byDay[key] = point
		}
		point.Sales += (p.SellingPrice - discount) * float64(p.Quantity)
		point.Profit += (p.SellingPrice - p.ProductPrice - discount) * float64(p.Quantity)
	}

	rows := make([]DayPoint, 0, 31)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if point, ok := byDay[key]; ok {
			rows = append(rows, *point)
		} else {
			rows = append(rows, DayPoint{Date: key})
		}
	}
	return rows, nil
}

func parseYearMonth(period string) (int, time.Month, bool) {
	if len(period) != 7 || period[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(period[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(period[5:])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func sortedCategoryValues(byCategory map[string]float64) []CategoryValue {
	rows := make([]CategoryValue, 0, len(byCategory))
	for category, value := range byCategory {
		rows = append(rows, CategoryValue{Category: category, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}
