// Package agent binds catalog, cart, mandate chain and classifier into a
// single shopping session. All mutable state (cart, intent registry,
// order history, conversation context) is scoped to the session;
// concurrent sessions get independent instances.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ayush1817-lab/UCP/internal/assistant"
	"github.com/ayush1817-lab/UCP/internal/cart"
	"github.com/ayush1817-lab/UCP/internal/catalog"
	"github.com/ayush1817-lab/UCP/internal/domain"
	"github.com/ayush1817-lab/UCP/internal/mandate"
	"github.com/ayush1817-lab/UCP/internal/order"
)

// recentHistoryLines is how much conversation context the classifier sees.
const recentHistoryLines = 6

// replyHistoryLimit caps how much of an agent reply is kept as context.
const replyHistoryLimit = 100

type Config struct {
	Profile    domain.UserProfile
	Catalog    catalog.Store
	Classifier assistant.Classifier
	MerchantID string
	Currency   string
	Logger     *slog.Logger
}

type Session struct {
	profile    domain.UserProfile
	store      catalog.Store
	classifier assistant.Classifier
	logger     *slog.Logger

	cart     *cart.Cart
	registry *mandate.Registry
	history  *order.History
	engine   *mandate.Engine

	// checkoutMu serializes the approve -> pay -> order -> clear chain so
	// two concurrent approvals cannot double-charge one cart.
	checkoutMu sync.Mutex

	// convoMu guards conversation context.
	convoMu       sync.Mutex
	conversation  []string
	lastMentioned *domain.Product
}

func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	history := order.NewHistory()
	return &Session{
		profile:    cfg.Profile,
		store:      cfg.Catalog,
		classifier: cfg.Classifier,
		logger:     logger,
		cart:       cart.New(),
		registry:   mandate.NewRegistry(cfg.Currency),
		history:    history,
		engine:     mandate.NewEngine(cfg.MerchantID, cfg.Currency, history),
	}
}

func (s *Session) Profile() domain.UserProfile {
	return s.profile
}

func (s *Session) Products(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

// CartView is the cart resolved against the catalog at read time.
type CartView struct {
	Items []domain.Product
	Total float64
	Count int
}

func (s *Session) ViewCart(ctx context.Context) (*CartView, error) {
	items, err := s.cart.Items(ctx, s.store)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, p := range items {
		total += p.Price
	}
	return &CartView{Items: items, Total: total, Count: s.cart.Count()}, nil
}

func (s *Session) ClearCart() {
	s.cart.Clear()
}

// AddResult reports a cart addition plus the auto-buy signal: when the
// added product satisfies an ACTIVE intent mandate the result names it,
// but nothing is purchased — the signal is all there is.
type AddResult struct {
	Product          domain.Product
	CartCount        int
	AutoBuyTriggered bool
	Mandate          *domain.IntentMandate
}

func (s *Session) AddToCart(ctx context.Context, productID string) (*AddResult, error) {
	p, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %q: %w", productID, err)
	}

	s.cart.Add(p.ID)
	s.setLastMentioned(p)

	result := &AddResult{Product: *p, CartCount: s.cart.Count()}
	if m := s.registry.Match(*p); m != nil {
		result.AutoBuyTriggered = true
		result.Mandate = m
		s.logger.Info("auto-buy eligible", "product_id", p.ID, "mandate_id", m.ID)
	}
	return result, nil
}

func (s *Session) CreateCartMandate(ctx context.Context) (*domain.CartMandate, error) {
	m, err := s.engine.CreateCartMandate(ctx, s.cart, s.store, s.profile)
	if err != nil {
		return nil, err
	}
	s.logger.Info("cart mandate created", "mandate_id", m.ID, "total", m.TotalAmount)
	return m, nil
}

// CheckoutResult is the full outcome of an approved checkout.
type CheckoutResult struct {
	SignedMandate  *domain.CartMandate
	PaymentMandate *domain.PaymentMandate
	Order          *domain.Order
}

// ApproveCheckout runs the chain on a round-tripped PENDING_APPROVAL
// mandate: approve, process payment, create the order, then clear the
// live cart as the checkout post-condition. The session is the system of
// record only for the order history; the caller owns the mandate between
// issuance and approval.
func (s *Session) ApproveCheckout(ctx context.Context, m *domain.CartMandate) (*CheckoutResult, error) {
	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	signed, err := s.engine.Approve(m, s.profile)
	if err != nil {
		return nil, err
	}

	payment, err := s.engine.ProcessPayment(signed)
	if err != nil {
		return nil, err
	}

	o, err := s.engine.CreateOrder(signed, payment, domain.Customer{
		UserID: s.profile.UserID,
		Name:   s.profile.Name,
		Email:  s.profile.Email,
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.logger.Info("checkout completed",
		"order_id", o.ID,
		"cart_mandate_id", signed.ID,
		"payment_mandate_id", payment.ID,
		"total", o.Total,
	)

	return &CheckoutResult{SignedMandate: signed, PaymentMandate: payment, Order: o}, nil
}

func (s *Session) CreateIntentMandate(conditions domain.IntentConditions) (*domain.IntentMandate, error) {
	m, err := s.registry.Register(s.profile.UserID, conditions)
	if err != nil {
		return nil, err
	}
	s.logger.Info("intent mandate registered", "mandate_id", m.ID, "category", conditions.Category)
	return m, nil
}

func (s *Session) RevokeIntentMandate(id string) error {
	return s.registry.Revoke(id)
}

func (s *Session) IntentMandates() []domain.IntentMandate {
	return s.registry.List()
}

func (s *Session) Orders() []domain.Order {
	return s.history.List()
}

// ChatResult is the structured outcome of one conversational turn.
type ChatResult struct {
	Intent    assistant.Intent
	Message   string
	ProductID string

	// Set when the turn added a product to the cart.
	AddedProduct     *domain.Product
	CartCount        int
	AutoBuyTriggered bool
	Mandate          *domain.IntentMandate

	// Set when the turn viewed the cart.
	Cart *CartView
}

// Chat classifies a user message and applies its side effects: cart
// additions (with the auto-buy check), cart views, browse tracking.
// Classifier failures never surface here; the adapter degrades them to a
// CHAT reply.
func (s *Session) Chat(ctx context.Context, message string) (*ChatResult, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Snapshot conversation context without holding the lock across the
	// blocking classifier call.
	s.convoMu.Lock()
	lastMentioned := s.lastMentioned
	recent := make([]string, 0, recentHistoryLines)
	if n := len(s.conversation); n > 0 {
		start := n - recentHistoryLines
		if start < 0 {
			start = 0
		}
		recent = append(recent, s.conversation[start:]...)
	}
	s.convoMu.Unlock()

	decision := s.classifier.Classify(ctx, assistant.Request{
		Message:       message,
		Products:      products,
		LastMentioned: lastMentioned,
		RecentHistory: recent,
	})

	s.convoMu.Lock()
	s.conversation = append(s.conversation,
		"User: "+message,
		"Agent: "+truncate(decision.Reply, replyHistoryLimit),
	)
	s.convoMu.Unlock()

	result := &ChatResult{
		Intent:    decision.Intent,
		Message:   decision.Reply,
		ProductID: decision.ProductID,
	}

	switch decision.Intent {
	case assistant.IntentAddToCart:
		if decision.ProductID == "" {
			break
		}
		added, err := s.AddToCart(ctx, decision.ProductID)
		if err != nil {
			// The reply is still delivered; the classifier may have
			// hallucinated an id.
			s.logger.Warn("classifier add-to-cart failed", "product_id", decision.ProductID, "error", err)
			break
		}
		result.AddedProduct = &added.Product
		result.CartCount = added.CartCount
		result.AutoBuyTriggered = added.AutoBuyTriggered
		result.Mandate = added.Mandate

	case assistant.IntentViewCart:
		view, err := s.ViewCart(ctx)
		if err != nil {
			s.logger.Warn("cart view failed", "error", err)
			break
		}
		result.Cart = view

	case assistant.IntentBrowse:
		lowerReply := strings.ToLower(decision.Reply)
		for _, p := range products {
			if strings.Contains(lowerReply, strings.ToLower(p.Name)) {
				pp := p
				s.setLastMentioned(&pp)
				break
			}
		}
	}

	return result, nil
}

func (s *Session) setLastMentioned(p *domain.Product) {
	s.convoMu.Lock()
	s.lastMentioned = p
	s.convoMu.Unlock()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
