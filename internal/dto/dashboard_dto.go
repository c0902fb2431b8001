package dto

import (
	"github.com/shopspring/decimal"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/lifecycle"
)

// Dashboard aggregates are informational: on repository failure the service
// logs and returns zero values instead of propagating the error.

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type DashboardResponse struct {
	SalesToday    decimal.Decimal `json:"sales_today"`
	OrdersToday   int64           `json:"orders_today"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	SalesByMethod MethodTotals    `json:"sales_by_method"`
	TopProducts   []TopProduct    `json:"top_products"`
	PendingBills  int64           `json:"pending_bills"`
}

// StoreStateResponse is the single lifecycle snapshot the UI consumes instead
// of assembling it from independently fetched flags.
type StoreStateResponse struct {
	State       string               `json:"state"`
	BusinessDay *BusinessDayResponse `json:"business_day"`
	Cashier     *CashierResponse     `json:"cashier"`
	AnyTillOpen bool                 `json:"any_till_open"`
	Actions     lifecycle.Actions    `json:"actions"`
}
