// Package assistant is the boundary to the conversational layer: it
// turns free-text user input into a structured intent decision the
// engine can act on. The reasoning behind the decision is out of scope
// here; only the contract matters.
package assistant

import (
	"context"
	"errors"

	"github.com/ayush1817-lab/UCP/internal/domain"
)

type Intent string

const (
	IntentBrowse    Intent = "BROWSE"
	IntentAddToCart Intent = "ADD_TO_CART"
	IntentViewCart  Intent = "VIEW_CART"
	IntentCheckout  Intent = "CHECKOUT"
	IntentChat      Intent = "CHAT"
)

// Decision is the structured outcome of classifying one user message.
type Decision struct {
	Intent    Intent
	ProductID string // empty when no product is referenced
	Reply     string // human-readable assistant reply
}

// Request carries the context the classifier needs: the message, the
// catalog, the product last talked about and the recent conversation.
type Request struct {
	Message       string
	Products      []domain.Product
	LastMentioned *domain.Product
	RecentHistory []string
}

// Classifier classifies a user message. Implementations absorb every
// underlying failure (network, parse, timeout) into a CHAT decision with
// an explanatory reply; a raw fault never reaches the caller.
type Classifier interface {
	Classify(ctx context.Context, req Request) Decision
}

// ErrClassifierUnavailable marks underlying adapter failures. It is
// internal to implementations: by the time a Decision is returned the
// error has been converted into a chat reply.
var ErrClassifierUnavailable = errors.New("classifier unavailable")
