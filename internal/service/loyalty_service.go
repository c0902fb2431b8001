package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

// LoyaltyService manages customers and their points ledger. Accrual on sales
// happens inside the order transaction; this service covers the rest.
type LoyaltyService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error)
	Redeem(ctx context.Context, customerID uuid.UUID, req dto.RedeemPointsRequest) (*dto.CustomerResponse, error)
	History(ctx context.Context, customerID uuid.UUID) ([]dto.LoyaltyEntryResponse, error)
}

type loyaltyService struct {
	repo repository.CustomerRepository
}

func NewLoyaltyService(repo repository.CustomerRepository) LoyaltyService {
	return &loyaltyService{repo: repo}
}

func (s *loyaltyService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID: c.ID.String(), Name: c.Name, Phone: c.Phone, Email: c.Email,
	}, nil
}

func (s *loyaltyService) GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("customer not found")
	}
	balance, err := s.repo.Balance(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID: c.ID.String(), Name: c.Name, Phone: c.Phone, Email: c.Email, Balance: balance,
	}, nil
}

func (s *loyaltyService) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		balance, err := s.repo.Balance(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.CustomerResponse{
			ID: c.ID.String(), Name: c.Name, Phone: c.Phone, Email: c.Email, Balance: balance,
		})
	}
	return out, nil
}

// Redeem appends a negative ledger entry after a balance check. The balance
// is never stored denormalized; the ledger is the source of truth.
func (s *loyaltyService) Redeem(ctx context.Context, customerID uuid.UUID, req dto.RedeemPointsRequest) (*dto.CustomerResponse, error) {
	if req.Points <= 0 {
		return nil, apierror.Validation("points must be positive")
	}
	if _, err := s.repo.FindByID(ctx, customerID); err != nil {
		return nil, apierror.NotFound("customer not found")
	}
	balance, err := s.repo.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if balance < req.Points {
		return nil, apierror.Conflict("insufficient points balance")
	}

	entry := &model.LoyaltyEntry{
		CustomerID:  customerID,
		EntryType:   model.LoyaltyRedemption,
		Points:      -req.Points,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return s.GetCustomer(ctx, customerID)
}

func (s *loyaltyService) History(ctx context.Context, customerID uuid.UUID) ([]dto.LoyaltyEntryResponse, error) {
	entries, err := s.repo.ListEntries(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoyaltyEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := dto.LoyaltyEntryResponse{
			ID:          e.ID.String(),
			EntryType:   e.EntryType,
			Points:      e.Points,
			Description: e.Description,
			CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.OrderID != nil {
			oid := e.OrderID.String()
			resp.OrderID = &oid
		}
		out = append(out, resp)
	}
	return out, nil
}
