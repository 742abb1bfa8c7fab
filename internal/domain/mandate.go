package domain

import "time"

type MandateType string

const (
	MandateTypeIntent MandateType = "INTENT_MANDATE"
	MandateTypeCart   MandateType = "CART_MANDATE"
)

// MandateStatus covers both mandate kinds: intent mandates move between
// ACTIVE/EXPIRED/REVOKED, cart mandates between PENDING_APPROVAL/APPROVED.
type MandateStatus string

const (
	MandateStatusActive          MandateStatus = "ACTIVE"
	MandateStatusExpired         MandateStatus = "EXPIRED"
	MandateStatusRevoked         MandateStatus = "REVOKED"
	MandateStatusPendingApproval MandateStatus = "PENDING_APPROVAL"
	MandateStatusApproved        MandateStatus = "APPROVED"
)

func (s MandateStatus) IsTerminal() bool {
	return s == MandateStatusApproved || s == MandateStatusExpired || s == MandateStatusRevoked
}

// String representation (for logging)
func (s MandateStatus) String() string {
	return string(s)
}

// IntentConditions is the condition mapping of a standing delegation rule.
// An absent key means no constraint on that dimension; matching is
// conjunctive across the present keys.
type IntentConditions struct {
	Category string   `json:"category,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

// IntentMandate is a standing rule authorizing unattended purchase under
// the stated conditions. ValidUntil is informational: matching filters on
// Status only (see DESIGN.md).
type IntentMandate struct {
	ID         string           `json:"mandate_id"`
	Type       MandateType      `json:"mandate_type"`
	Status     MandateStatus    `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UserID     string           `json:"user_id"`
	Conditions IntentConditions `json:"conditions"`
	MaxAmount  float64          `json:"max_amount"`
	Currency   string           `json:"currency"`
	ValidUntil time.Time        `json:"valid_until"`
	Signature  string           `json:"signature"`
}

// CartMandateItem captures a cart line with the price at mandate-creation
// time, so later catalog or cart changes never alter the mandate.
type CartMandateItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// CartMandate is a point-in-time authorization request over a cart
// snapshot. Signature and UserSignature stay empty until approval.
type CartMandate struct {
	ID              string            `json:"mandate_id"`
	Type            MandateType       `json:"mandate_type"`
	Status          MandateStatus     `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UserID          string            `json:"user_id"`
	Items           []CartMandateItem `json:"cart_items"`
	TotalAmount     float64           `json:"total_amount"`
	Currency        string            `json:"currency"`
	PaymentMethod   PaymentMethod     `json:"payment_method"`
	ShippingAddress ShippingAddress   `json:"shipping_address"`
	Signature       string            `json:"signature"`
	ApprovedAt      time.Time         `json:"approved_at"`
	UserSignature   string            `json:"user_signature"`
}

type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "COMPLETED"

// PaymentMandate is the proof-of-payment record tied to exactly one
// approved cart mandate. Never mutated after creation.
type PaymentMandate struct {
	ID                 string        `json:"payment_mandate_id"`
	CartMandateID      string        `json:"cart_mandate_id"`
	Amount             float64       `json:"amount"`
	Currency           string        `json:"currency"`
	PaymentMethodToken string        `json:"payment_method_token"`
	MerchantID         string        `json:"merchant_id"`
	ProcessedAt        time.Time     `json:"processed_at"`
	Status             PaymentStatus `json:"status"`
	AuthorizationCode  string        `json:"authorization_code"`
}
