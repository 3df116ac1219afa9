// SPDX-License-Identifier: GPL-3.0-only

package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, ref, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"productName", "productCategory", "productPrice", "sellingPrice", "quantity", "ratings", "discounts", "soldDate"},
		{"widget", "Tools", 40.0, 100.0, 5, 4.5, 10.0, "2026-03-15"},
		{"gizmo", "Toys", 30.0, 60.0, 2, "", "", ""},
	})

	products, rowErrors, err := ParseWorkbook(buf, 7)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("expected no row errors, got %v", rowErrors)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	first := products[0]
	if first.ProductName != "Widget" {
		t.Errorf("expected capitalized name Widget, got %s", first.ProductName)
	}
	if first.UserID != 7 {
		t.Errorf("expected owner 7, got %d", first.UserID)
	}
	if first.Ratings == nil || *first.Ratings != 4.5 {
		t.Errorf("unexpected ratings: %v", first.Ratings)
	}
	if first.SoldDate == nil || first.SoldDate.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("unexpected sold date: %v", first.SoldDate)
	}

	second := products[1]
	if second.Ratings != nil || second.Discounts != nil || second.SoldDate != nil {
		t.Errorf("expected optional fields to stay nil: %+v", second)
	}
}

func TestParseWorkbookCollectsRowErrors(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"productName", "productCategory", "productPrice", "sellingPrice", "quantity"},
		{"", "Tools", 40.0, 100.0, 5},
		{"gizmo", "Toys", 30.0, 60.0, "zero"},
		{"doohickey", "Toys", 30.0, 60.0, 3},
	})

	products, rowErrors, err := ParseWorkbook(buf, 1)
	if err != nil {
		t.Fatalf("ParseWorkbook: %v", err)
	}
	if len(products) != 1 || products[0].ProductName != "Doohickey" {
		t.Fatalf("expected only the valid row, got %+v", products)
	}
	if len(rowErrors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", rowErrors)
	}
	if rowErrors[0].Row != 2 || rowErrors[1].Row != 3 {
		t.Errorf("unexpected row numbers: %v", rowErrors)
	}
}

func TestParseWorkbookMissingColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"productName", "productCategory", "productPrice"},
		{"widget", "Tools", 40.0},
	})

	if _, _, err := ParseWorkbook(buf, 1); err == nil {
		t.Fatal("expected an error for missing required columns")
	}
}

func TestParseDateFormats(t *testing.T) {
	cases := map[string]string{
		"2026-03-15": "2026-03-15",
		"03/15/2026": "2026-03-15",
		"15-03-2026": "2026-03-15",
		"2026/03/15": "2026-03-15",
		"15.03.2026": "2026-03-15",
		"2026.03.15": "2026-03-15",
	}
	for input, want := range cases {
		got, err := ParseDate(input)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", input, err)
			continue
		}
		if got.Format("2006-01-02") != want {
			t.Errorf("ParseDate(%q) = %s, want %s", input, got.Format("2006-01-02"), want)
		}
	}

	if got, err := ParseDate("  "); err != nil || got != nil {
		t.Errorf("expected blank date to be nil, got %v, %v", got, err)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("expected an error for an unparseable date")
	}
	if _, err := ParseDate(time.Now().Format(time.Kitchen)); err == nil {
		t.Error("expected an error for a time-only value")
	}
}
