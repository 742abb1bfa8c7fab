package domain

type PaymentMethod struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Brand     string `json:"brand,omitempty"`
	LastFour  string `json:"last_four,omitempty"`
	Email     string `json:"email,omitempty"`
	IsDefault bool   `json:"is_default"`
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// UserProfile is the read-only identity/payment/shipping source for a session.
type UserProfile struct {
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	PaymentMethods  []PaymentMethod `json:"payment_methods"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// DefaultPaymentMethod returns the method flagged default, if any.
func (u UserProfile) DefaultPaymentMethod() (PaymentMethod, bool) {
	for _, pm := range u.PaymentMethods {
		if pm.IsDefault {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}
