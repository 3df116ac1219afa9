// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"salestrack-server/commons"
	"salestrack-server/handlers"
	"salestrack-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/signup", handlers.SignupHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler)
	api_v1.POST("/auth/forgot-password", handlers.ForgotPasswordHandler)
	api_v1.POST("/auth/verify-otp", handlers.VerifyOTPHandler)
	api_v1.POST("/auth/reset-password", handlers.ResetPasswordHandler)

	api_v1.GET("/plans", handlers.GetPlansHandler)

	api_v1.GET("/users/profile", handlers.GetProfileHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/users/profile", handlers.UpdateProfileHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/users/password", handlers.ChangePasswordHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/users/plan", handlers.GetPlanNameHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/users/:user_id/plan/:plan_id", handlers.ChangePlanHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/users/:user_id/current-plan", handlers.GetCurrentPlanHandler, middlewares.VerifySessionMiddleware)

	api_v1.POST("/products", handlers.CreateProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/products", handlers.GetProductsHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/products/:product_id", handlers.UpdateProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/products/:product_id", handlers.DeleteProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/products/date/:date", handlers.GetProductsByDateHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/products/summary", handlers.GetProductsSummaryHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/products/import", handlers.ImportProductsHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/kpis/total-sales", handlers.TotalSalesHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/total-profit", handlers.TotalProfitHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/avg-rating", handlers.AvgRatingHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/total-orders", handlers.TotalOrdersHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/total-quantity", handlers.TotalQuantityHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/highest-selling-product", handlers.HighestSellingProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/highest-profit-product", handlers.HighestProfitProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/avg-discount", handlers.AvgDiscountHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/top-profit-products", handlers.TopProfitProductsHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/profit-margin", handlers.ProfitMarginHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/avg-order-value", handlers.AvgOrderValueHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/top-category", handlers.TopCategoryHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/kpis/revenue-growth", handlers.RevenueGrowthHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/statistics/sales-trend", handlers.SalesTrendHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/category-distribution", handlers.CategoryDistributionHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/avg-ratings", handlers.AvgRatingsHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/profit-per-category", handlers.ProfitPerCategoryHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/top-products", handlers.TopProductsHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/daily-sales", handlers.DailySalesHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/profit-per-product", handlers.ProfitPerProductHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/total-revenue", handlers.TotalRevenueHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/revenue-profit-margin", handlers.RevenueProfitMarginHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/statistics/avg-profit-margin-per-category", handlers.AvgProfitMarginPerCategoryHandler, middlewares.VerifySessionMiddleware)
	commons.Logger.Info("v1 routes registered successfully")
}
