// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"salestrack-server/db"
	"salestrack-server/stats"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Statistics chart routes. All accept an optional ?period= filter
// (day, week, month, year, all; defaults to all).

func chartPeriod(c echo.Context) string {
	period := c.QueryParam("period")
	if period == "" {
		return stats.PeriodAll
	}
	return period
}

// SalesTrendHandler godoc
// @Summary      Monthly sales trend
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.MonthPoint   "Sales by month"
// @Router       /v1/statistics/sales-trend [get]
func SalesTrendHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	points, err := stats.SalesTrend(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build sales trend: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, points)
}

// CategoryDistributionHandler godoc
// @Summary      Revenue share per category
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.CategoryValue "Revenue per category"
// @Router       /v1/statistics/category-distribution [get]
func CategoryDistributionHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.CategoryDistribution(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build category distribution: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// AvgRatingsHandler godoc
// @Summary      Average rating per category
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.CategoryRating "Average rating per category"
// @Router       /v1/statistics/avg-ratings [get]
func AvgRatingsHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.AvgRatings(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build average ratings: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// ProfitPerCategoryHandler godoc
// @Summary      Profit per category
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.CategoryProfit "Profit per category"
// @Router       /v1/statistics/profit-per-category [get]
func ProfitPerCategoryHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.ProfitPerCategory(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build profit per category: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// TopProductsHandler godoc
// @Summary      Top products by quantity sold
// @Tags         statistics
// @Produce      json
// @Param        limit  query  int  false  "Number of products, defaults to 5"
// @Success      200 {array} stats.TopProduct   "Products by quantity, descending"
// @Router       /v1/statistics/top-products [get]
func TopProductsHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 5
	}
	rows, err := stats.TopProducts(db.Conn, user.ID, limit)
	if err != nil {
		c.Logger().Errorf("Failed to list top products: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// DailySalesHandler godoc
// @Summary      Quantity sold per day
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.DailyQuantity "Quantity per day"
// @Router       /v1/statistics/daily-sales [get]
func DailySalesHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.DailySales(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build daily sales: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// ProfitPerProductHandler godoc
// @Summary      Profit per product
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.ProductProfit "Profit per product"
// @Router       /v1/statistics/profit-per-product [get]
func ProfitPerProductHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.ProfitPerProduct(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build profit per product: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// TotalRevenueHandler godoc
// @Summary      Revenue per month
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.MonthRevenue "Revenue per month"
// @Router       /v1/statistics/total-revenue [get]
func TotalRevenueHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.TotalRevenue(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build total revenue: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// RevenueProfitMarginHandler godoc
// @Summary      Revenue and profit margin trend
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.MarginPoint  "Monthly revenue with margin"
// @Router       /v1/statistics/revenue-profit-margin [get]
func RevenueProfitMarginHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.RevenueProfitMarginTrend(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build revenue margin trend: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}

// AvgProfitMarginPerCategoryHandler godoc
// @Summary      Average profit margin per category
// @Tags         statistics
// @Produce      json
// @Param        period  query  string  false  "day, week, month, year, all"
// @Success      200 {array} stats.CategoryMargin "Margin per category"
// @Router       /v1/statistics/avg-profit-margin-per-category [get]
func AvgProfitMarginPerCategoryHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	rows, err := stats.AvgProfitMarginPerCategory(db.Conn, user.ID, chartPeriod(c))
	if err != nil {
		c.Logger().Errorf("Failed to build margin per category: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, rows)
}
