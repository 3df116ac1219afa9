// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"salestrack-server/commons"
	"salestrack-server/db"
	"salestrack-server/importer"
	"salestrack-server/middlewares"
	"salestrack-server/models"
	"salestrack-server/stats"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateProductHandler godoc
// @Summary      Record a product sale
// @Description  Creates a product entry owned by the authenticated user.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productRequest  body  ProductRequest  true  "Product payload"
// @Success      201 {object} ProductPayload     "Product created"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products [post]
func CreateProductHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid product payload:", err)
		return echo.ErrBadRequest
	}

	product, err := productFromRequest(req, user.ID)
	if err != nil {
		logger.Error("Product validation failed: ", err)
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := db.Conn.Create(&product).Error; err != nil {
		logger.Errorf("Failed to create product: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Product created successfully")
	return c.JSON(http.StatusCreated, productPayload(product))
}

// GetProductsHandler godoc
// @Summary      List products
// @Description  Returns the authenticated user's products, newest sale
// @Description  first, paginated.
// @Tags         products
// @Produce      json
// @Param        page   query  int  false  "Page number, defaults to 1"
// @Param        limit  query  int  false  "Page size, defaults to 10, max 100"
// @Success      200 {object} ProductListResponse "Products retrieved"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products [get]
func GetProductsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var total int64
	if err := db.Conn.Model(&models.Product{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count products: %v", err)
		return echo.ErrInternalServerError
	}

	var products []models.Product
	err = db.Conn.Where("user_id = ?", user.ID).
		Order("sold_date desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Errorf("Failed to list products: %v", err)
		return echo.ErrInternalServerError
	}

	payloads := make([]ProductPayload, 0, len(products))
	for _, product := range products {
		payloads = append(payloads, productPayload(product))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return c.JSON(http.StatusOK, ProductListResponse{
		Products: payloads,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// UpdateProductHandler godoc
// @Summary      Update a product
// @Description  Replaces the fields of a product the user owns.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product_id      path  int             true  "Product ID"
// @Param        productRequest  body  ProductRequest  true  "Product payload"
// @Success      200 {object} ProductPayload     "Product updated"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Product not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products/{product_id} [put]
func UpdateProductHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	productID, err := pathID(c, "product_id")
	if err != nil {
		return err
	}

	product := models.Product{}
	err = db.Conn.Where("id = ? AND user_id = ?", productID, user.ID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Product not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Product not found",
			}
		}
		logger.Errorf("Failed to find product: %v", err)
		return echo.ErrInternalServerError
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid product payload:", err)
		return echo.ErrBadRequest
	}

	updated, err := productFromRequest(req, user.ID)
	if err != nil {
		logger.Error("Product validation failed: ", err)
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt

	if err := db.Conn.Save(&updated).Error; err != nil {
		logger.Errorf("Failed to update product: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Product updated successfully")
	return c.JSON(http.StatusOK, productPayload(updated))
}

// DeleteProductHandler godoc
// @Summary      Delete a product
// @Description  Soft-deletes a product the user owns. Deleted products
// @Description  no longer contribute to KPIs or statistics.
// @Tags         products
// @Produce      json
// @Param        product_id  path  int  true  "Product ID"
// @Success      200 {object} MessageResponse    "Product deleted"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Product not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products/{product_id} [delete]
func DeleteProductHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	productID, err := pathID(c, "product_id")
	if err != nil {
		return err
	}

	result := db.Conn.Where("id = ? AND user_id = ?", productID, user.ID).Delete(&models.Product{})
	if result.Error != nil {
		logger.Errorf("Failed to delete product: %v", result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		logger.Error("Product not found.")
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Product not found",
		}
	}

	logger.Info("Product deleted successfully")
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// GetProductsByDateHandler godoc
// @Summary      List products sold on a date
// @Description  Returns the user's products whose sale date falls on the
// @Description  given day.
// @Tags         products
// @Produce      json
// @Param        date  path  string  true  "Sale date, e.g. 2026-03-15"
// @Success      200 {array}  ProductPayload     "Products retrieved"
// @Failure      400 {object} echo.HTTPError     "Unparseable date"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products/date/{date} [get]
func GetProductsByDateHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	date, err := importer.ParseDate(c.Param("date"))
	if err != nil || date == nil {
		logger.Error("Unparseable date parameter.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "date could not be parsed",
		}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var products []models.Product
	err = db.Conn.Where("user_id = ? AND sold_date >= ? AND sold_date < ?", user.ID, dayStart, dayEnd).
		Order("sold_date desc").
		Find(&products).Error
	if err != nil {
		logger.Errorf("Failed to list products by date: %v", err)
		return echo.ErrInternalServerError
	}

	payloads := make([]ProductPayload, 0, len(products))
	for _, product := range products {
		payloads = append(payloads, productPayload(product))
	}
	return c.JSON(http.StatusOK, payloads)
}

// GetProductsSummaryHandler godoc
// @Summary      Sales summary over a period
// @Description  Returns per-bucket sales, profit and quantity. Accepts
// @Description  period=week, period=month, or a month like 2026-03; a
// @Description  month is zero-filled per day.
// @Tags         products
// @Produce      json
// @Param        period  query  string  false  "week, month, or YYYY-MM"
// @Success      200 {array}  stats.DayPoint     "Summary retrieved"
// @Failure      400 {object} echo.HTTPError     "Unsupported period"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products/summary [get]
func GetProductsSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	period := c.QueryParam("period")
	if period == "" {
		period = "week"
	}

	summary, err := stats.Summary(db.Conn, user.ID, period)
	if err != nil {
		if errors.Is(err, stats.ErrBadPeriod) {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "period must be week, month, or a month like 2026-03",
			}
		}
		logger.Errorf("Failed to build summary: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, summary)
}

// ImportProductsHandler godoc
// @Summary      Bulk import products from an Excel workbook
// @Description  Parses the first sheet of the uploaded .xlsx file and
// @Description  inserts every valid row. Invalid rows are reported with
// @Description  their row numbers without failing the batch.
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Workbook (.xlsx)"
// @Success      200 {object} ImportResponse     "Import completed"
// @Failure      400 {object} echo.HTTPError     "Missing or unreadable file"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/products/import [post]
func ImportProductsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("No authenticated user: ", err)
		return echo.ErrUnauthorized
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("No file in import request:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "file field is required",
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Errorf("Failed to open uploaded file: %v", err)
		return echo.ErrInternalServerError
	}
	defer file.Close()

	products, rowErrors, err := importer.ParseWorkbook(file, user.ID)
	if err != nil {
		logger.Error("Workbook rejected: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	batchID := uuid.NewString()
	if len(products) > 0 {
		if err := db.Conn.Create(&products).Error; err != nil {
			logger.Errorf("Failed to insert imported products: %v", err)
			return echo.ErrInternalServerError
		}
	}

	commons.Logger.Infof("Import batch %s: %d rows imported, %d rejected", batchID, len(products), len(rowErrors))
	return c.JSON(http.StatusOK, ImportResponse{
		BatchID:       batchID,
		ImportedCount: len(products),
		Errors:        rowErrors,
		Message:       "Import completed",
	})
}

func productFromRequest(req ProductRequest, userID uint) (models.Product, error) {
	if req.ProductName == "" {
		return models.Product{}, errors.New("productName field is required")
	}
	if req.ProductCategory == "" {
		return models.Product{}, errors.New("productCategory field is required")
	}
	if req.ProductPrice <= 0 {
		return models.Product{}, errors.New("productPrice must be greater than 0")
	}
	if req.SellingPrice <= 0 {
		return models.Product{}, errors.New("sellingPrice must be greater than 0")
	}
	if req.Quantity <= 0 {
		return models.Product{}, errors.New("quantity must be a positive integer")
	}
	if req.Ratings != nil && (*req.Ratings < 0 || *req.Ratings > 5) {
		return models.Product{}, errors.New("ratings must be between 0 and 5")
	}
	if req.Discounts != nil && *req.Discounts < 0 {
		return models.Product{}, errors.New("discounts must be a non-negative number")
	}

	soldDate, err := importer.ParseDate(req.SoldDate)
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		UserID:          userID,
		ProductName:     commons.Capitalize(req.ProductName),
		ProductCategory: req.ProductCategory,
		ProductPrice:    req.ProductPrice,
		SellingPrice:    req.SellingPrice,
		Quantity:        req.Quantity,
		Ratings:         req.Ratings,
		Discounts:       req.Discounts,
		SoldDate:        soldDate,
	}, nil
}

func productPayload(product models.Product) ProductPayload {
	payload := ProductPayload{
		ID:              product.ID,
		ProductName:     product.ProductName,
		ProductCategory: product.ProductCategory,
		ProductPrice:    product.ProductPrice,
		SellingPrice:    product.SellingPrice,
		Quantity:        product.Quantity,
		Ratings:         product.Ratings,
		Discounts:       product.Discounts,
	}
	if product.SoldDate != nil {
		formatted := product.SoldDate.Format("2006-01-02")
		payload.SoldDate = &formatted
	}
	return payload
}
