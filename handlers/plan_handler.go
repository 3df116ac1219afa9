// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"salestrack-server/commons"
	"salestrack-server/db"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"salestrack-server/notifications"
	"salestrack-server/subscriptions"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// GetPlansHandler godoc
// @Summary      List subscription plans
// @Description  Returns all available plans.
// @Tags         plans
// @Produce      json
// @Success      200 {array}  PlanDetails        "Plans retrieved"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans [get]
func GetPlansHandler(c echo.Context) error {
	logger := c.Logger()

	var plans []models.Plan
	if err := db.Conn.Order("price asc").Find(&plans).Error; err != nil {
		logger.Errorf("Failed to list plans: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]PlanDetails, 0, len(plans))
	for _, plan := range plans {
		details = append(details, PlanDetails{
			ID:          plan.ID,
			Name:        string(plan.Name),
			Price:       plan.Price,
			Currency:    plan.Currency,
			Description: plan.Description,
			Features:    splitFeatures(plan.Features),
		})
	}
	return c.JSON(http.StatusOK, details)
}

// ChangePlanHandler godoc
// @Summary      Change a user's subscription plan
// @Description  Deactivates the current subscription and activates the
// @Description  requested plan for 30 days. Sends a confirmation email.
// @Tags         plans
// @Produce      json
// @Param        user_id  path  int  true  "User ID"
// @Param        plan_id  path  int  true  "Plan ID"
// @Success      200 {object} ChangePlanResponse "Plan updated"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid identifiers"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Cannot change another user's plan"
// @Failure      404 {object} echo.HTTPError     "User or plan not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/{user_id}/plan/{plan_id} [put]
func ChangePlanHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	planID, err := pathID(c, "plan_id")
	if err != nil {
		return err
	}

	if userID != user.ID {
		logger.Error("Attempt to change another user's plan.")
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "You can only change your own plan",
		}
	}

	if _, err := subscriptions.ChangePlan(db.Conn, userID, planID); err != nil {
		if errors.Is(err, subscriptions.ErrNotFound) {
			logger.Error("User or plan not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "User or plan not found",
			}
		}
		logger.Errorf("Failed to change plan: %v", err)
		return echo.ErrInternalServerError
	}

	plan, err := subscriptions.CurrentPlan(db.Conn, userID)
	if err != nil {
		logger.Errorf("Failed to load new plan: %v", err)
		return echo.ErrInternalServerError
	}

	go sendSubscriptionConfirmation(*user, *plan)

	logger.Info("Plan updated successfully")
	return c.JSON(http.StatusOK, ChangePlanResponse{
		Message: "Plan updated successfully",
		Plan:    *plan,
	})
}

// GetCurrentPlanHandler godoc
// @Summary      Get a user's current plan
// @Description  Returns the active subscription's plan details.
// @Tags         plans
// @Produce      json
// @Param        user_id  path  int  true  "User ID"
// @Success      200 {object} subscriptions.PlanView "Current plan"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Cannot view another user's plan"
// @Failure      404 {object} echo.HTTPError     "No active plan"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/{user_id}/current-plan [get]
func GetCurrentPlanHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if userID != user.ID {
		logger.Error("Attempt to view another user's plan.")
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "You can only view your own plan",
		}
	}

	plan, err := subscriptions.CurrentPlan(db.Conn, userID)
	if err != nil {
		if errors.Is(err, subscriptions.ErrNoActivePlan) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "No active subscription found",
			}
		}
		logger.Errorf("Failed to load current plan: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, plan)
}

// GetPlanNameHandler godoc
// @Summary      Get the authenticated user's plan name
// @Description  Returns the lowercase plan name, "free" when no
// @Description  subscription is active.
// @Tags         plans
// @Produce      json
// @Success      200 {object} PlanNameResponse   "Plan name"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/plan [get]
func GetPlanNameHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	plan, err := subscriptions.CurrentPlan(db.Conn, user.ID)
	if err != nil {
		if errors.Is(err, subscriptions.ErrNoActivePlan) {
			return c.JSON(http.StatusOK, PlanNameResponse{Plan: "free"})
		}
		logger.Errorf("Failed to load current plan: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, PlanNameResponse{Plan: strings.ToLower(plan.Name)})
}

func sendSubscriptionConfirmation(user models.User, plan subscriptions.PlanView) {
	expiry := "never"
	if plan.Expiry != nil {
		expiry = plan.Expiry.Format("2006-01-02")
	}

	toName := user.FirstName + " " + user.LastName
	err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &toName,
		Subject:  "Your SalesTrack subscription",
		Template: "subscription_confirmation",
		Variables: map[string]any{
			"first_name":    user.FirstName,
			"plan_name":     plan.Name,
			"plan_price":    plan.Price,
			"plan_currency": plan.Currency,
			"expiry_date":   expiry,
		},
	})
	if err != nil {
		commons.Logger.Errorf("Failed to send subscription confirmation email: %v", err)
	}
}

func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: name + " must be a positive integer",
		}
	}
	return uint(id), nil
}

func splitFeatures(features string) []string {
	if features == "" {
		return []string{}
	}
	parts := strings.Split(features, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
