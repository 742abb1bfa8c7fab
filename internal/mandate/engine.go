// Package mandate implements the AP2-style authorization chain: intent
// mandates (standing rules), cart mandates (point-in-time approval
// requests), payment mandates (proof of payment) and the orders tying
// them together.
package mandate

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ayush1817-lab/UCP/internal/cart"
	"github.com/ayush1817-lab/UCP/internal/catalog"
	"github.com/ayush1817-lab/UCP/internal/domain"
	"github.com/ayush1817-lab/UCP/internal/order"
	"github.com/ayush1817-lab/UCP/internal/signature"
)

// DeliveryEstimate is added to the order creation time.
const DeliveryEstimate = 4 * 24 * time.Hour

// Engine drives the cart mandate -> payment mandate -> order chain. It is
// stateless between issuance and approval: the caller is the system of
// record for a PENDING_APPROVAL mandate and must round-trip it back
// unmodified.
type Engine struct {
	merchantID string
	currency   string
	history    *order.History

	now func() time.Time
}

func NewEngine(merchantID, currency string, history *order.History) *Engine {
	return &Engine{
		merchantID: merchantID,
		currency:   currency,
		history:    history,
		now:        time.Now,
	}
}

// CreateCartMandate snapshots the current cart into a PENDING_APPROVAL
// mandate. Items, total, the default payment method and the shipping
// address are captured by value; mutating the live cart afterwards never
// changes the mandate. The signature stays empty until approval.
func (e *Engine) CreateCartMandate(ctx context.Context, c *cart.Cart, store catalog.Store, user domain.UserProfile) (*domain.CartMandate, error) {
	if c.Count() == 0 {
		return nil, ErrEmptyCart
	}

	products, err := c.Items(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	items := make([]domain.CartMandateItem, 0, len(products))
	var total float64
	for _, p := range products {
		items = append(items, domain.CartMandateItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
		})
		total += p.Price
	}

	paymentMethod, ok := user.DefaultPaymentMethod()
	if !ok {
		return nil, ErrNoDefaultPaymentMethod
	}

	return &domain.CartMandate{
		ID:              newMandateID(),
		Type:            domain.MandateTypeCart,
		Status:          domain.MandateStatusPendingApproval,
		CreatedAt:       e.now(),
		UserID:          user.UserID,
		Items:           items,
		TotalAmount:     total,
		Currency:        e.currency,
		PaymentMethod:   paymentMethod,
		ShippingAddress: user.ShippingAddress,
	}, nil
}

// Approve transitions the mandate to APPROVED, stamping ApprovedAt and
// two signatures: the mandate signature over the full post-transition
// content (status and ApprovedAt included) and a user-attribution
// signature binding the user id to the approval instant.
//
// Approve is not idempotent: approving the same mandate twice yields
// different signatures because the timestamps differ. Callers approve
// exactly once.
func (e *Engine) Approve(m *domain.CartMandate, user domain.UserProfile) (*domain.CartMandate, error) {
	m.Status = domain.MandateStatusApproved
	m.ApprovedAt = e.now()
	m.Signature = ""
	m.UserSignature = ""

	sig, err := signature.Sign(m)
	if err != nil {
		return nil, fmt.Errorf("failed to sign mandate: %w", err)
	}
	m.Signature = sig

	userSig, err := signature.Sign(map[string]any{
		"user": user.UserID,
		"time": e.now().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign user attribution: %w", err)
	}
	m.UserSignature = fmt.Sprintf("sig_%s_%s", user.UserID, userSig)

	return m, nil
}

// ProcessPayment executes payment for an approved cart mandate and
// returns the COMPLETED payment mandate. The payment method token is
// derived from the method snapshot, so two mandates paying with the same
// method share a token; that is a documented simplification, not a
// security property.
func (e *Engine) ProcessPayment(m *domain.CartMandate) (*domain.PaymentMandate, error) {
	if m.Status != domain.MandateStatusApproved {
		return nil, ErrMandateNotApproved
	}

	token, err := signature.Sign(m.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to derive payment token: %w", err)
	}

	return &domain.PaymentMandate{
		ID:                 newMandateID(),
		CartMandateID:      m.ID,
		Amount:             m.TotalAmount,
		Currency:           m.Currency,
		PaymentMethodToken: "tok_" + token,
		MerchantID:         e.merchantID,
		ProcessedAt:        e.now(),
		Status:             domain.PaymentStatusCompleted,
		AuthorizationCode:  fmt.Sprintf("%06d", rand.Intn(1000000)),
	}, nil
}

// CreateOrder assembles the confirmed order from an approved cart
// mandate and its payment mandate, appends it to the history and returns
// it. The pairing is validated: a payment mandate issued for a different
// cart mandate is rejected with ErrMandateMismatch.
//
// Clearing the live cart is a post-condition of the checkout use case,
// not of CreateOrder.
func (e *Engine) CreateOrder(cm *domain.CartMandate, pm *domain.PaymentMandate, customer domain.Customer) (*domain.Order, error) {
	if pm.CartMandateID != cm.ID {
		return nil, ErrMandateMismatch
	}

	items := make([]domain.CartMandateItem, len(cm.Items))
	copy(items, cm.Items)

	now := e.now()
	o := domain.Order{
		ID:              newOrderID(),
		Status:          domain.OrderStatusConfirmed,
		CreatedAt:       now,
		Customer:        customer,
		Items:           items,
		Total:           cm.TotalAmount,
		Currency:        cm.Currency,
		ShippingAddress: cm.ShippingAddress,
		Payment: domain.OrderPayment{
			Method:            cm.PaymentMethod.Type,
			AuthorizationCode: pm.AuthorizationCode,
			PaymentMandateID:  pm.ID,
		},
		AP2Verification: domain.AP2Verification{
			CartMandateID:        cm.ID,
			CartMandateSignature: cm.Signature,
			UserSignature:        cm.UserSignature,
			PaymentMandateID:     pm.ID,
		},
		EstimatedDelivery: now.Add(DeliveryEstimate),
	}

	e.history.Append(o)
	return &o, nil
}
