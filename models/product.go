// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              uint    `gorm:"primaryKey"`
	ProductName     string  `gorm:"size:255;not null;index"`
	ProductCategory string  `gorm:"size:255;not null;index"`
	ProductPrice    float64 `gorm:"not null"`
	SellingPrice    float64 `gorm:"not null"`
	Quantity        int     `gorm:"not null"`
	Ratings         *float64
	Discounts       *float64
	SoldDate        *time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	UserID          uint           `gorm:"not null;index"`
	User            User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Revenue is the gross sale value of the row. Discounts are deducted
// by the callers that report net figures.
func (p *Product) Revenue() float64 {
	return p.SellingPrice * float64(p.Quantity)
}

// Profit is revenue minus cost for the row.
func (p *Product) Profit() float64 {
	return (p.SellingPrice - p.ProductPrice) * float64(p.Quantity)
}

func init() {
	AllModels = append(AllModels, &Product{})
}
