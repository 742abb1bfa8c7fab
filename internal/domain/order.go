package domain

import "time"

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
)

type Customer struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type OrderPayment struct {
	Method            string `json:"method"`
	AuthorizationCode string `json:"authorization_code"`
	PaymentMandateID  string `json:"payment_mandate_id"`
}

// AP2Verification is the audit block tying an order back to its
// authorization chain: cart mandate, its signatures, payment mandate.
type AP2Verification struct {
	CartMandateID        string `json:"cart_mandate_id"`
	CartMandateSignature string `json:"cart_mandate_signature"`
	UserSignature        string `json:"user_signature"`
	PaymentMandateID     string `json:"payment_mandate_id"`
}

// Order is the durable outcome of a completed purchase. It owns a full
// flattened copy of everything needed for audit, independent of later
// cart or mandate mutation.
type Order struct {
	ID                string            `json:"order_id"`
	Status            OrderStatus       `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	Customer          Customer          `json:"customer"`
	Items             []CartMandateItem `json:"items"`
	Total             float64           `json:"total"`
	Currency          string            `json:"currency"`
	ShippingAddress   ShippingAddress   `json:"shipping_address"`
	Payment           OrderPayment      `json:"payment"`
	AP2Verification   AP2Verification   `json:"ap2_verification"`
	EstimatedDelivery time.Time         `json:"estimated_delivery"`
}
