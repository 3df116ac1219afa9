// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"salestrack-server/importer"
	"salestrack-server/subscriptions"
)

// swagger:model SignupRequest
type SignupRequest struct {
	// User's first name
	// required: true
	FirstName string `json:"first_name" example:"John"`
	// User's last name
	// required: true
	LastName string `json:"last_name" example:"Doe"`
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's phone number in international or national format
	Phone string `json:"phone" example:"+237650000001"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword123"`
	// Must match the password field
	// required: true
	ConfirmPassword string `json:"confirm_password" example:"MySecretPassword123"`
}

// swagger:model SignupResponse
type SignupResponse struct {
	// Message indicating successful signup
	Message string `json:"message" example:"Signup successful"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword123"`
}

// swagger:model UserPayload
type UserPayload struct {
	// Unique identifier for the user
	ID uint `json:"id" example:"1"`
	// User's first name
	FirstName string `json:"first_name" example:"John"`
	// User's last name
	LastName string `json:"last_name" example:"Doe"`
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's phone number
	Phone string `json:"phone" example:"+237650000001"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	// Message indicating successful login.
	// The session token itself is delivered as an HTTP-only cookie.
	Message string `json:"message" example:"Login successful"`
	// Authenticated user's profile
	User UserPayload `json:"user"`
}

// swagger:model MessageResponse
type MessageResponse struct {
	// Message indicating the operation outcome
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email address of the account to reset
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model VerifyOTPRequest
type VerifyOTPRequest struct {
	// Email address of the account being reset
	Email string `json:"email" example:"user@example.com"`
	// 6-digit code received by email
	Code string `json:"code" example:"123456"`
}

// swagger:model VerifyOTPResponse
type VerifyOTPResponse struct {
	// Message indicating the code was accepted
	Message string `json:"message" example:"Code verified"`
	// Short-lived token authorizing a password reset
	ResetToken string `json:"reset_token" example:"sample_reset_token"`
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token obtained from verify-otp
	ResetToken string `json:"reset_token" example:"sample_reset_token"`
	// New password
	NewPassword string `json:"new_password" example:"MyNewPassword123"`
	// Must match the new_password field
	ConfirmPassword string `json:"confirm_password" example:"MyNewPassword123"`
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// New first name
	FirstName string `json:"first_name" example:"John"`
	// New last name
	LastName string `json:"last_name" example:"Doe"`
	// New email address
	Email string `json:"email" example:"user@example.com"`
	// New phone number
	Phone string `json:"phone" example:"+237650000001"`
}

// swagger:model ProfileResponse
type ProfileResponse struct {
	// Authenticated user's profile
	User UserPayload `json:"user"`
	// User's current subscription plan, null when none is active
	Plan *subscriptions.PlanView `json:"plan"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	OldPassword string `json:"old_password" example:"MySecretPassword123"`
	// New password
	NewPassword string `json:"new_password" example:"MyNewPassword123"`
	// Must match the new_password field
	ConfirmPassword string `json:"confirm_password" example:"MyNewPassword123"`
}

// swagger:model PlanDetails
type PlanDetails struct {
	// Unique identifier for the plan
	ID uint `json:"id" example:"2"`
	// Plan name
	Name string `json:"name" example:"PRO"`
	// Monthly price
	Price float64 `json:"price" example:"9.99"`
	// Price currency
	Currency string `json:"currency" example:"USD"`
	// Plan description
	Description string `json:"description" example:"For growing businesses"`
	// Plan features
	Features []string `json:"features"`
}

// swagger:model ChangePlanResponse
type ChangePlanResponse struct {
	// Message indicating the plan change succeeded
	Message string `json:"message" example:"Plan updated successfully"`
	// The now-active plan
	Plan subscriptions.PlanView `json:"plan"`
}

// swagger:model PlanNameResponse
type PlanNameResponse struct {
	// Name of the user's current plan, "free" when none is active
	Plan string `json:"plan" example:"pro"`
}

// swagger:model ProductRequest
type ProductRequest struct {
	// Product name
	// required: true
	ProductName string `json:"productName" example:"Wireless Mouse"`
	// Product category
	// required: true
	ProductCategory string `json:"productCategory" example:"Electronics"`
	// Unit cost price, must be greater than 0
	// required: true
	ProductPrice float64 `json:"productPrice" example:"12.5"`
	// Unit selling price, must be greater than 0
	// required: true
	SellingPrice float64 `json:"sellingPrice" example:"25"`
	// Units sold, must be a positive integer
	// required: true
	Quantity int `json:"quantity" example:"3"`
	// Optional rating between 0 and 5
	Ratings *float64 `json:"ratings" example:"4.5"`
	// Optional discount amount
	Discounts *float64 `json:"discounts" example:"2"`
	// Optional sale date, several common spellings accepted
	SoldDate string `json:"soldDate" example:"2026-03-15"`
}

// swagger:model ProductPayload
type ProductPayload struct {
	// Unique identifier for the product
	ID uint `json:"id" example:"1"`
	// Product name
	ProductName string `json:"productName" example:"Wireless Mouse"`
	// Product category
	ProductCategory string `json:"productCategory" example:"Electronics"`
	// Unit cost price
	ProductPrice float64 `json:"productPrice" example:"12.5"`
	// Unit selling price
	SellingPrice float64 `json:"sellingPrice" example:"25"`
	// Units sold
	Quantity int `json:"quantity" example:"3"`
	// Rating between 0 and 5, null when unrated
	Ratings *float64 `json:"ratings" example:"4.5"`
	// Discount amount, null when none
	Discounts *float64 `json:"discounts" example:"2"`
	// Sale date, null when unknown
	SoldDate *string `json:"soldDate" example:"2026-03-15"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model ProductListResponse
type ProductListResponse struct {
	// Products on this page, newest sale first
	Products []ProductPayload `json:"products"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
}

// swagger:model ImportResponse
type ImportResponse struct {
	// Identifier assigned to this import batch
	BatchID string `json:"batch_id" example:"9f3c1a2e-0b1d-4f0a-9c3e-2d1b0a9f3c1a"`
	// Number of rows inserted
	ImportedCount int `json:"imported_count" example:"42"`
	// Rows that failed validation, empty when all rows imported
	Errors []importer.RowError `json:"errors,omitempty"`
	// Message indicating the import outcome
	Message string `json:"message" example:"Import completed"`
}
