package dto

type CreateCustomerRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Phone *string `json:"phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type RedeemPointsRequest struct {
	Points      int64  `json:"points"      validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=3"`
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Balance int64   `json:"balance"`
}

type LoyaltyEntryResponse struct {
	ID          string `json:"id"`
	EntryType   string `json:"entry_type"`
	Points      int64  `json:"points"`
	OrderID     *string `json:"order_id"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}
