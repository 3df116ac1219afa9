// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"salestrack-server/crypto"
	"salestrack-server/db"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

func productTestServer() *echo.Echo {
	e := echo.New()
	e.POST("/v1/products", CreateProductHandler, middlewares.VerifySessionMiddleware)
	e.GET("/v1/products", GetProductsHandler, middlewares.VerifySessionMiddleware)
	e.PUT("/v1/products/:product_id", UpdateProductHandler, middlewares.VerifySessionMiddleware)
	e.DELETE("/v1/products/:product_id", DeleteProductHandler, middlewares.VerifySessionMiddleware)
	e.GET("/v1/products/summary", GetProductsSummaryHandler, middlewares.VerifySessionMiddleware)
	e.POST("/v1/products/import", ImportProductsHandler, middlewares.VerifySessionMiddleware)
	return e
}

func createTestUser(t *testing.T, email string) (*models.User, *http.Cookie) {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Phone:     "+12025550134",
		Password:  "unused",
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	token, err := crypto.CreateAccessToken(user.Email, crypto.SessionTokenTTL())
	if err != nil {
		t.Fatalf("failed to create access token: %v", err)
	}
	return &user, &http.Cookie{Name: middlewares.SessionCookieName, Value: token}
}

func TestProductCRUDFlow(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := productTestServer()
	_, cookie := createTestUser(t, "crud@example.com")

	rec := doJSON(t, e, http.MethodPost, "/v1/products", `{
		"productName": "wireless mouse",
		"productCategory": "Electronics",
		"productPrice": 12.5,
		"sellingPrice": 25,
		"quantity": 3,
		"ratings": 4.5,
		"soldDate": "2026-03-15"
	}`, []*http.Cookie{cookie})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d: %s", rec.Code, rec.Body.String())
	}

	var created ProductPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal create response: %v", err)
	}
	if created.ProductName != "Wireless mouse" {
		t.Errorf("expected capitalized name, got %q", created.ProductName)
	}
	if created.SoldDate == nil || *created.SoldDate != "2026-03-15" {
		t.Errorf("unexpected sold date: %v", created.SoldDate)
	}

	rec = doJSON(t, e, http.MethodGet, "/v1/products?page=1&limit=10", "", []*http.Cookie{cookie})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", rec.Code)
	}
	var list ProductListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to unmarshal list response: %v", err)
	}
	if len(list.Products) != 1 || list.Pagination.Total != 1 {
		t.Fatalf("expected one product, got %+v", list)
	}

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/v1/products/%d", created.ID), `{
		"productName": "wireless mouse",
		"productCategory": "Electronics",
		"productPrice": 12.5,
		"sellingPrice": 30,
		"quantity": 4
	}`, []*http.Cookie{cookie})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated ProductPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to unmarshal update response: %v", err)
	}
	if updated.SellingPrice != 30 || updated.Quantity != 4 {
		t.Errorf("update did not apply: %+v", updated)
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/v1/products/%d", created.ID), "", []*http.Cookie{cookie})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/v1/products/%d", created.ID), "", []*http.Cookie{cookie})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestProductOwnershipIsolation(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := productTestServer()
	_, ownerCookie := createTestUser(t, "owner@example.com")
	_, otherCookie := createTestUser(t, "other@example.com")

	rec := doJSON(t, e, http.MethodPost, "/v1/products", `{
		"productName": "gadget",
		"productCategory": "Electronics",
		"productPrice": 5,
		"sellingPrice": 10,
		"quantity": 1
	}`, []*http.Cookie{ownerCookie})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on create, got %d", rec.Code)
	}
	var created ProductPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal create response: %v", err)
	}

	rec = doJSON(t, e, http.MethodGet, "/v1/products", "", []*http.Cookie{otherCookie})
	var list ProductListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to unmarshal list response: %v", err)
	}
	if len(list.Products) != 0 {
		t.Errorf("expected other user to see no products, got %d", len(list.Products))
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/v1/products/%d", created.ID), "", []*http.Cookie{otherCookie})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting another user's product, got %d", rec.Code)
	}
}

func TestProductSummaryRejectsBadPeriod(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := productTestServer()
	_, cookie := createTestUser(t, "summary@example.com")

	rec := doJSON(t, e, http.MethodGet, "/v1/products/summary?period=decade", "", []*http.Cookie{cookie})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on unsupported period, got %d", rec.Code)
	}
}

func TestImportProductsEndpoint(t *testing.T) {
	openTestDB(t)
	setAuthEnv(t)
	e := productTestServer()
	user, cookie := createTestUser(t, "import@example.com")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"productName", "productCategory", "productPrice", "sellingPrice", "quantity", "soldDate"},
		{"widget", "Tools", 40.0, 100.0, 5, "2026-03-15"},
		{"", "Tools", 40.0, 100.0, 5, ""},
		{"gizmo", "Toys", 30.0, 60.0, 2, ""},
	}
	for i, row := range rows {
		ref, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, ref, &row); err != nil {
			t.Fatalf("failed to build workbook: %v", err)
		}
	}
	workbook, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "products.xlsx")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/products/import", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on import, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ImportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal import response: %v", err)
	}
	if resp.ImportedCount != 2 {
		t.Errorf("expected 2 imported rows, got %d", resp.ImportedCount)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Row != 3 {
		t.Errorf("expected one row error for row 3, got %+v", resp.Errors)
	}
	if resp.BatchID == "" {
		t.Error("expected a non-empty batch ID")
	}

	var count int64
	db.Conn.Model(&models.Product{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 products persisted, got %d", count)
	}
}
