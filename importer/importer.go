// SPDX-License-Identifier: GPL-3.0-only

// Package importer turns an uploaded Excel workbook into product rows.
// The first sheet is read; the header row maps columns by name so the
// column order in the workbook does not matter.
package importer

import (
	"errors"
	"fmt"
	"io"
	"salestrack-server/commons"
	"salestrack-server/models"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// RowError reports one rejected workbook row. Row numbers are
// 1-based as shown in a spreadsheet, header row included.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
	"01-02-2006",
	"02.01.2006",
	"2006.01.02",
}

// ParseDate accepts the date spellings sellers commonly export.
// Formats are tried in order, so ambiguous day/month values resolve
// to the earlier format.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, format := range dateFormats {
		if d, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return &d, nil
		}
	}
	if d, err := time.ParseInLocation(time.RFC3339, value, time.Local); err == nil {
		return &d, nil
	}
	return nil, fmt.Errorf("unable to parse date: %s. Supported formats: %s", value, strings.Join(dateFormats, ", "))
}

// ParseWorkbook reads the first sheet into products owned by userID.
// Invalid rows are collected as RowErrors rather than aborting the
// whole import; the returned error is reserved for unreadable files.
func ParseWorkbook(r io.Reader, userID uint) ([]models.Product, []RowError, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("workbook has no data rows")
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, nil, err
	}

	var products []models.Product
	var rowErrors []RowError
	for i, cells := range rows[1:] {
		rowNum := i + 2
		if isBlank(cells) {
			continue
		}
		product, err := parseRow(cells, columns, userID)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		products = append(products, product)
	}
	return products, rowErrors, nil
}

var requiredColumns = []string{"productname", "productcategory", "productprice", "sellingprice", "quantity"}

func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		key := normalizeHeader(name)
		if key != "" {
			columns[key] = i
		}
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}
	return columns, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

func cell(cells []string, columns map[string]int, key string) string {
	idx, ok := columns[key]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(cells []string, columns map[string]int, userID uint) (models.Product, error) {
	name := cell(cells, columns, "productname")
	if name == "" {
		return models.Product{}, errors.New("productName is required")
	}
	category := cell(cells, columns, "productcategory")
	if category == "" {
		return models.Product{}, errors.New("productCategory is required")
	}

	productPrice, err := parsePositiveFloat(cell(cells, columns, "productprice"), "productPrice")
	if err != nil {
		return models.Product{}, err
	}
	sellingPrice, err := parsePositiveFloat(cell(cells, columns, "sellingprice"), "sellingPrice")
	if err != nil {
		return models.Product{}, err
	}

	quantityRaw := cell(cells, columns, "quantity")
	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil || quantity <= 0 {
		return models.Product{}, fmt.Errorf("quantity must be a positive integer, got %q", quantityRaw)
	}

	product := models.Product{
		UserID:          userID,
		ProductName:     commons.Capitalize(name),
		ProductCategory: category,
		ProductPrice:    productPrice,
		SellingPrice:    sellingPrice,
		Quantity:        quantity,
	}

	if raw := cell(cells, columns, "ratings"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || rating < 0 || rating > 5 {
			return models.Product{}, fmt.Errorf("ratings must be between 0 and 5, got %q", raw)
		}
		product.Ratings = &rating
	}

	if raw := cell(cells, columns, "discounts"); raw != "" {
		discount, err := strconv.ParseFloat(raw, 64)
		if err != nil || discount < 0 {
			return models.Product{}, fmt.Errorf("discounts must be a non-negative number, got %q", raw)
		}
		product.Discounts = &discount
	}

	soldDate, err := ParseDate(cell(cells, columns, "solddate"))
	if err != nil {
		return models.Product{}, err
	}
	product.SoldDate = soldDate

	return product, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0, got %q", field, raw)
	}
	return v, nil
}
