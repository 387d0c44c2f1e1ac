package entity

// PaymentType is the card network or mobile-money marker of a payment method.
type PaymentType string

const (
	PaymentTypeVisa           PaymentType = "VISA"
	PaymentTypeMasterCard     PaymentType = "MasterCard"
	PaymentTypeVisaMasterCard PaymentType = "VISA/MasterCard"
	PaymentTypeAmex           PaymentType = "AMEX"
	PaymentTypeMobileMoney    PaymentType = "MobileMoney"
)

// PaymentKind discriminates the two payment method variants.
type PaymentKind string

const (
	PaymentKindCard        PaymentKind = "card-network"
	PaymentKindMobileMoney PaymentKind = "mobile-money"
)

// MobileNetwork is a mobile-money provider.
type MobileNetwork string

const (
	NetworkMTN        MobileNetwork = "MTN"
	NetworkVodafone   MobileNetwork = "Vodafone"
	NetworkAirtelTigo MobileNetwork = "AirtelTigo"
)

// PaymentMethod is a saved or selected way to pay. Only the last four card
// digits are kept; full numbers and CVVs never reach storage.
type PaymentMethod struct {
	ID        string        `json:"id,omitempty"`
	Type      PaymentType   `json:"type"`
	Last4     string        `json:"last4,omitempty"`
	Network   MobileNetwork `json:"network,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Expiry    string        `json:"expiry,omitempty"`
	IsDefault bool          `json:"isDefault"`
}

// Kind reports whether the method is a card or mobile money.
func (p *PaymentMethod) Kind() PaymentKind {
	if p.Type == PaymentTypeMobileMoney {
		return PaymentKindMobileMoney
	}

	return PaymentKindCard
}

// Clone returns a copy that shares no memory with p.
func (p *PaymentMethod) Clone() *PaymentMethod {
	if p == nil {
		return nil
	}
	cloned := *p

	return &cloned
}

// IsValidPaymentType reports whether t is a known payment type.
func IsValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeVisa, PaymentTypeMasterCard, PaymentTypeVisaMasterCard, PaymentTypeAmex, PaymentTypeMobileMoney:
		return true
	default:
		return false
	}
}
