package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
}

type OrderPaymentRequest struct {
	Method string          `json:"method" validate:"required,oneof=cash card pix other"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

type RegisterOrderRequest struct {
	CashierSessionID string                `json:"cashier_session_id" validate:"required,uuid"`
	CustomerID       *string               `json:"customer_id"        validate:"omitempty,uuid"`
	Items            []OrderItemRequest    `json:"items"    validate:"required,min=1,dive"`
	Payments         []OrderPaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type OrderFilter struct {
	SessionID string `form:"session_id" validate:"omitempty,uuid"`
	Status    string `form:"status"     validate:"omitempty,oneof=completed cancelled"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderPaymentResponse struct {
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	PixChargeID *string         `json:"pix_charge_id,omitempty"`
}

type OrderResponse struct {
	ID               string                 `json:"id"`
	TicketNumber     int64                  `json:"ticket_number"`
	CashierSessionID string                 `json:"cashier_session_id"`
	CustomerID       *string                `json:"customer_id"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	DiscountTotal    decimal.Decimal        `json:"discount_total"`
	Total            decimal.Decimal        `json:"total"`
	Change           decimal.Decimal        `json:"change"`
	Status           string                 `json:"status"`
	Items            []OrderItemResponse    `json:"items"`
	Payments         []OrderPaymentResponse `json:"payments"`
	CreatedAt        string                 `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
