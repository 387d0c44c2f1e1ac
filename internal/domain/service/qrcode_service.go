package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateCartInviteQR generates a PNG QR code inviting collaborators to a cart
	GenerateCartInviteQR(cartID string) ([]byte, error)

	// ParseCartInviteQR parses QR code data and returns the cart ID
	ParseCartInviteQR(qrData string) (string, error)
}
