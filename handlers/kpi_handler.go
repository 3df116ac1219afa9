// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"salestrack-server/db"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"salestrack-server/stats"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Dashboard KPI routes. Each returns a single scalar (or a small
// object) keyed the way the dashboard widgets expect.

func kpiUser(c echo.Context) (*models.User, error) {
	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		c.Logger().Error("No authenticated user: ", err)
		return nil, echo.ErrUnauthorized
	}
	return user, nil
}

// TotalSalesHandler godoc
// @Summary      Total sales revenue
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "total_sales"
// @Router       /v1/kpis/total-sales [get]
func TotalSalesHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.TotalSales(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute total sales: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"total_sales": value})
}

// TotalProfitHandler godoc
// @Summary      Total profit
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "total_profit"
// @Router       /v1/kpis/total-profit [get]
func TotalProfitHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.TotalProfit(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute total profit: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"total_profit": value})
}

// AvgRatingHandler godoc
// @Summary      Average product rating
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "avg_rating"
// @Router       /v1/kpis/avg-rating [get]
func AvgRatingHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.AvgRating(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute average rating: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"avg_rating": value})
}

// TotalOrdersHandler godoc
// @Summary      Number of recorded sales
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]int64 "total_orders"
// @Router       /v1/kpis/total-orders [get]
func TotalOrdersHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.TotalOrders(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to count orders: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_orders": value})
}

// TotalQuantityHandler godoc
// @Summary      Total units sold
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]int64 "total_quantity"
// @Router       /v1/kpis/total-quantity [get]
func TotalQuantityHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.TotalQuantity(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute total quantity: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_quantity": value})
}

// HighestSellingProductHandler godoc
// @Summary      Product with the highest revenue
// @Tags         kpis
// @Produce      json
// @Success      200 {object} stats.ProductRef   "Highest selling product, null when no products"
// @Router       /v1/kpis/highest-selling-product [get]
func HighestSellingProductHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	product, err := stats.HighestSellingProduct(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to find highest selling product: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]*stats.ProductRef{"highest_selling_product": product})
}

// HighestProfitProductHandler godoc
// @Summary      Product with the highest profit
// @Tags         kpis
// @Produce      json
// @Success      200 {object} stats.ProductRef   "Highest profit product, null when no products"
// @Router       /v1/kpis/highest-profit-product [get]
func HighestProfitProductHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	product, err := stats.HighestProfitProduct(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to find highest profit product: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]*stats.ProductRef{"highest_profit_product": product})
}

// AvgDiscountHandler godoc
// @Summary      Average discount
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "avg_discount"
// @Router       /v1/kpis/avg-discount [get]
func AvgDiscountHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.AvgDiscount(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute average discount: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"avg_discount": value})
}

// TopProfitProductsHandler godoc
// @Summary      Most profitable products
// @Tags         kpis
// @Produce      json
// @Param        limit  query  int  false  "Number of products, defaults to 5"
// @Success      200 {array}  stats.ProfitProduct "Products by profit, descending"
// @Router       /v1/kpis/top-profit-products [get]
func TopProfitProductsHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 5
	}
	products, err := stats.TopProfitProducts(db.Conn, user.ID, limit)
	if err != nil {
		c.Logger().Errorf("Failed to list top profit products: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, products)
}

// ProfitMarginHandler godoc
// @Summary      Overall profit margin percentage
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "profit_margin"
// @Router       /v1/kpis/profit-margin [get]
func ProfitMarginHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.ProfitMargin(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute profit margin: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"profit_margin": value})
}

// AvgOrderValueHandler godoc
// @Summary      Average order value
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "avg_order_value"
// @Router       /v1/kpis/avg-order-value [get]
func AvgOrderValueHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.AvgOrderValue(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute average order value: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"avg_order_value": value})
}

// TopCategoryHandler godoc
// @Summary      Category with the highest revenue
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]string  "top_category, empty when no products"
// @Router       /v1/kpis/top-category [get]
func TopCategoryHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	category, err := stats.TopCategory(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to find top category: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]string{"top_category": category})
}

// RevenueGrowthHandler godoc
// @Summary      Revenue growth, this month vs last
// @Tags         kpis
// @Produce      json
// @Success      200 {object} map[string]float64 "revenue_growth percentage"
// @Router       /v1/kpis/revenue-growth [get]
func RevenueGrowthHandler(c echo.Context) error {
	user, err := kpiUser(c)
	if err != nil {
		return err
	}
	value, err := stats.RevenueGrowth(db.Conn, user.ID)
	if err != nil {
		c.Logger().Errorf("Failed to compute revenue growth: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]float64{"revenue_growth": value})
}
