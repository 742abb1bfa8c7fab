package mandate

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayush1817-lab/UCP/internal/domain"
	"github.com/ayush1817-lab/UCP/internal/signature"
)

const (
	// IntentValidity is the window stamped on new intent mandates.
	// ValidUntil is informational: Match filters on status only, the
	// reference behavior never transitions a mandate to EXPIRED.
	IntentValidity = 7 * 24 * time.Hour

	// DefaultMaxAmount applies when a mandate has no max_price condition.
	DefaultMaxAmount = 100
)

// Registry stores the standing delegation rules of one session and
// matches them against candidate purchases.
type Registry struct {
	currency string

	mu       sync.RWMutex
	mandates []domain.IntentMandate

	now func() time.Time
}

func NewRegistry(currency string) *Registry {
	return &Registry{
		currency: currency,
		now:      time.Now,
	}
}

// Register appends a new ACTIVE mandate built from the conditions
// mapping. No uniqueness constraint applies; duplicate rules are
// permitted and simply sit later in the scan order.
func (r *Registry) Register(userID string, conditions domain.IntentConditions) (*domain.IntentMandate, error) {
	sig, err := signature.Sign(conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint conditions: %w", err)
	}

	maxAmount := float64(DefaultMaxAmount)
	if conditions.MaxPrice != nil {
		maxAmount = *conditions.MaxPrice
	}

	now := r.now()
	m := domain.IntentMandate{
		ID:         newMandateID(),
		Type:       domain.MandateTypeIntent,
		Status:     domain.MandateStatusActive,
		CreatedAt:  now,
		UserID:     userID,
		Conditions: conditions,
		MaxAmount:  maxAmount,
		Currency:   r.currency,
		ValidUntil: now.Add(IntentValidity),
		Signature:  sig,
	}

	r.mu.Lock()
	r.mandates = append(r.mandates, m)
	r.mu.Unlock()

	out := m
	return &out, nil
}

// Match scans mandates in insertion order and returns the first ACTIVE
// one whose present conditions all hold against the product: category is
// case-insensitive equality, max_price an inclusive upper bound. An
// absent condition is no constraint. First-match-wins is deliberate;
// callers must not assume best-match. Returns nil when nothing matches.
func (r *Registry) Match(p domain.Product) *domain.IntentMandate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.mandates {
		if m.Status != domain.MandateStatusActive {
			continue
		}
		if m.Conditions.Category != "" && !strings.EqualFold(m.Conditions.Category, p.Category) {
			continue
		}
		if m.Conditions.MaxPrice != nil && p.Price > *m.Conditions.MaxPrice {
			continue
		}
		out := m
		return &out
	}
	return nil
}

// List returns all mandates in registration order, active or not.
func (r *Registry) List() []domain.IntentMandate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.IntentMandate, len(r.mandates))
	copy(out, r.mandates)
	return out
}

// Revoke transitions the mandate with the given id to REVOKED, taking it
// out of matching for good. Revoking an already-terminal mandate is a
// no-op.
func (r *Registry) Revoke(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.mandates {
		if r.mandates[i].ID != id {
			continue
		}
		if !r.mandates[i].Status.IsTerminal() {
			r.mandates[i].Status = domain.MandateStatusRevoked
		}
		return nil
	}
	return ErrMandateNotFound
}

func newMandateID() string {
	return "mandate_" + uuid.NewString()
}

func newOrderID() string {
	return "order_" + uuid.NewString()
}
