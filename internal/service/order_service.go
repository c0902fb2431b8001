package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/infra"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/worker"
)

type OrderService interface {
	Register(ctx context.Context, operatorID uuid.UUID, req dto.RegisterOrderRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id, operatorID uuid.UUID, reason string) error
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, f dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	repo        repository.OrderRepository
	cashier     CashierService
	cashierRepo repository.CashierRepository
	productRepo repository.ProductRepository
	customers   repository.CustomerRepository
	pix         *infra.PixClient
	pixBreaker  *infra.CircuitBreaker
	dispatcher  *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	cashier CashierService,
	cashierRepo repository.CashierRepository,
	productRepo repository.ProductRepository,
	customers repository.CustomerRepository,
	pix *infra.PixClient,
	pixBreaker *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:        repo,
		cashier:     cashier,
		cashierRepo: cashierRepo,
		productRepo: productRepo,
		customers:   customers,
		pix:         pix,
		pixBreaker:  pixBreaker,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Register ─────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. validate the cashier session is open
//  2. resolve products, compute totals, validate payment sufficiency
//  3. next ticket, create order + items + payments
//  4. decrement stock
//  5. append one SALE ledger row per payment; cash rows move the running balance
//  6. accrue loyalty points when a customer is attached
//
// Pix charges are created after commit; the sale is already settled at the till
// and charge polling is the worker's job.

func (s *orderService) Register(ctx context.Context, operatorID uuid.UUID, req dto.RegisterOrderRequest) (*dto.OrderResponse, error) {
	sessionID, err := uuid.Parse(req.CashierSessionID)
	if err != nil {
		return nil, apierror.Validation("invalid cashier_session_id")
	}

	sess, err := s.cashier.FindOpenSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apierror.Validation("invalid customer_id")
		}
		if _, err := s.customers.FindByID(ctx, cid); err != nil {
			return nil, apierror.NotFound("customer not found")
		}
		customerID = &cid
	}

	// Resolve products and calculate totals (pre-flight, outside the TX)
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
		discount  decimal.Decimal
		subtotal  decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero
	discountTotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid product_id")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
		}
		if !p.Active {
			return nil, apierror.Validation(fmt.Sprintf("product %q is inactive", p.Name))
		}
		lineSubtotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		if lineSubtotal.IsNegative() {
			return nil, apierror.Validation(fmt.Sprintf("discount exceeds line total for %q", p.Name))
		}
		subtotal = subtotal.Add(lineSubtotal)
		discountTotal = discountTotal.Add(item.Discount)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
			discount:  item.Discount,
			subtotal:  lineSubtotal,
		})
	}

	total := subtotal

	totalPayments := decimal.Zero
	for _, p := range req.Payments {
		totalPayments = totalPayments.Add(p.Amount)
	}
	if totalPayments.LessThan(total) {
		return nil, apierror.Validation("payments do not cover the order total")
	}
	change := totalPayments.Sub(total)

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticket, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		order = model.Order{
			TicketNumber:     ticket,
			CashierSessionID: sessionID,
			OperatorID:       operatorID,
			CustomerID:       customerID,
			Subtotal:         subtotal,
			DiscountTotal:    discountTotal,
			Total:            total,
			Status:           model.OrderCompleted,
		}
		for _, r := range resolved {
			order.Items = append(order.Items, model.OrderItem{
				ProductID: r.productID,
				Quantity:  r.quantity,
				UnitPrice: r.price,
				Discount:  r.discount,
				Subtotal:  r.subtotal,
			})
		}
		for _, p := range req.Payments {
			order.Payments = append(order.Payments, model.OrderPayment{
				Method: p.Method,
				Amount: p.Amount,
			})
		}
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.productRepo.DecrementStockTx(tx, r.productID, r.quantity); err != nil {
				return fmt.Errorf("stock for %s: %w", r.name, err)
			}
		}

		// The till ledger records one SALE per payment. Cash change is handed
		// back from the drawer, so the cash row is net of change.
		changeLeft := change
		for i := range order.Payments {
			p := &order.Payments[i]
			amount := p.Amount
			if p.Method == model.MethodCash && changeLeft.IsPositive() {
				amount = amount.Sub(changeLeft)
				changeLeft = decimal.Zero
			}
			method := p.Method
			op := &model.CashierOperation{
				CashierSessionID: sessionID,
				OperationType:    model.OpSale,
				PaymentMethod:    &method,
				Amount:           amount,
				OperatorID:       operatorID,
				Description:      fmt.Sprintf("sale ticket %d", order.TicketNumber),
				ReferenceID:      &order.ID,
				CreatedAt:        time.Now(),
			}
			if err := s.cashierRepo.CreateOperationTx(tx, op); err != nil {
				return err
			}
			if p.Method == model.MethodCash {
				sess.CurrentBalance = sess.CurrentBalance.Add(amount)
			}
		}
		if err := s.cashierRepo.UpdateSessionTx(tx, sess); err != nil {
			return err
		}

		// Loyalty: one point per whole currency unit of the total
		if customerID != nil {
			points := order.Total.IntPart()
			if points > 0 {
				entry := &model.LoyaltyEntry{
					CustomerID:  *customerID,
					EntryType:   model.LoyaltyAccrual,
					Points:      points,
					OrderID:     &order.ID,
					Description: fmt.Sprintf("sale ticket %d", order.TicketNumber),
					CreatedAt:   time.Now(),
				}
				if err := s.customers.CreateEntryTx(tx, entry); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.initiatePixCharges(ctx, &order)

	resp := orderToResponse(&order)
	resp.Change = change
	return resp, nil
}

// initiatePixCharges creates a gateway charge for every pix payment and leaves
// confirmation to the pix worker. Gateway failures are logged, never fatal:
// the order is already settled at the till.
func (s *orderService) initiatePixCharges(ctx context.Context, order *model.Order) {
	if s.pix == nil {
		return
	}
	for i := range order.Payments {
		p := &order.Payments[i]
		if p.Method != model.MethodPix {
			continue
		}
		var charge *infra.PixCharge
		amount, _ := p.Amount.Float64()
		err := s.pixBreaker.Execute(func() error {
			var cerr error
			charge, cerr = s.pix.CreateCharge(ctx, order.ID.String(), amount)
			return cerr
		})
		if err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).Msg("pix charge creation failed")
			continue
		}
		p.PixChargeID = &charge.ChargeID
		if err := s.repo.Update(ctx, order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to persist pix charge id")
			continue
		}
		if s.dispatcher != nil {
			if err := s.dispatcher.EnqueuePixPoll(ctx, worker.PixPollJobPayload{
				OrderID:  order.ID.String(),
				ChargeID: charge.ChargeID,
			}); err != nil {
				log.Error().Err(err).Str("charge_id", charge.ChargeID).Msg("failed to enqueue pix poll")
			}
		}
	}
}

// ── Cancel ───────────────────────────────────────────────────────────────────
// The ledger is append-only: cancelling creates inverse ADJUSTMENT rows and
// restores stock, it never deletes the SALE rows.

func (s *orderService) Cancel(ctx context.Context, id, operatorID uuid.UUID, reason string) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("order not found")
	}
	if order.Status != model.OrderCompleted {
		return apierror.Conflict("order is not in a cancellable state")
	}

	sess, err := s.cashier.FindOpenSession(ctx, order.CashierSessionID)
	if err != nil {
		return apierror.Conflict("the originating cashier session is no longer open")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order.Status = model.OrderCancelled
		order.CancelReason = &reason
		if tx != nil {
			if err := tx.Save(order).Error; err != nil {
				return err
			}
		} else if err := s.repo.Update(ctx, order); err != nil {
			return err
		}

		for _, item := range order.Items {
			var restoreErr error
			if tx != nil {
				restoreErr = tx.Model(&model.Product{}).
					Where("id = ?", item.ProductID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			} else {
				restoreErr = s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
			}
			if restoreErr != nil {
				return restoreErr
			}
		}

		for _, p := range order.Payments {
			method := p.Method
			op := &model.CashierOperation{
				CashierSessionID: order.CashierSessionID,
				OperationType:    model.OpAdjustment,
				PaymentMethod:    &method,
				Amount:           p.Amount.Neg(),
				OperatorID:       operatorID,
				Description:      fmt.Sprintf("cancel ticket %d: %s", order.TicketNumber, reason),
				ReferenceID:      &order.ID,
				CreatedAt:        time.Now(),
			}
			if err := s.cashierRepo.CreateOperationTx(tx, op); err != nil {
				return err
			}
			if p.Method == model.MethodCash {
				sess.CurrentBalance = sess.CurrentBalance.Sub(p.Amount)
			}
		}
		return s.cashierRepo.UpdateSessionTx(tx, sess)
	})
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("order not found")
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, f dto.OrderFilter) (*dto.OrderListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	filter := repository.OrderFilter{Status: f.Status, Page: f.Page, Limit: f.Limit}
	if f.SessionID != "" {
		sid, err := uuid.Parse(f.SessionID)
		if err != nil {
			return nil, apierror.Validation("invalid session_id")
		}
		filter.SessionID = &sid
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrderListResponse{Total: total, Page: f.Page, Limit: f.Limit}
	for i := range orders {
		resp.Data = append(resp.Data, *orderToResponse(&orders[i]))
	}
	return resp, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:               o.ID.String(),
		TicketNumber:     o.TicketNumber,
		CashierSessionID: o.CashierSessionID.String(),
		Subtotal:         o.Subtotal,
		DiscountTotal:    o.DiscountTotal,
		Total:            o.Total,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.CustomerID != nil {
		cid := o.CustomerID.String()
		resp.CustomerID = &cid
	}
	for _, item := range o.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal,
		})
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, dto.OrderPaymentResponse{
			Method:      p.Method,
			Amount:      p.Amount,
			PixChargeID: p.PixChargeID,
		})
	}
	return resp
}
