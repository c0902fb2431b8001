package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Barcode     *string         `json:"barcode"`
	Name        string          `json:"name"  validate:"required,min=2"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	Stock       int             `json:"stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	Barcode     *string          `json:"barcode"`
	Name        *string          `json:"name"  validate:"omitempty,min=2"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Barcode     *string         `json:"barcode"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *string         `json:"category_id"`
	Category    *string         `json:"category"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

// PriceLookupResponse is the barcode price-check payload cached in Redis.
type PriceLookupResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
