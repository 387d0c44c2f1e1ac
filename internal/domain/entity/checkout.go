package entity

// CheckoutSelection is the address and payment method chosen for the cart
// currently being purchased. Both halves are independently optional.
type CheckoutSelection struct {
	Address       *Address       `json:"address,omitempty"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
}

// Complete reports whether checkout may proceed.
func (s CheckoutSelection) Complete() bool {
	return s.Address != nil && s.PaymentMethod != nil
}

// Session is the signed-in user as seen by the local state layer.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   Role   `json:"role,omitempty"`
}
