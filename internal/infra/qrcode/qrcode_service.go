package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const (
	cartInviteType = "cart_invite"
	defaultSize    = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// CartInviteData is the JSON payload encoded in a cart invite QR code
type CartInviteData struct {
	CartID string `json:"cart_id"`
	Type   string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, levelName := defaultSize, ""
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		levelName = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(levelName),
	}
}

func recoveryLevel(name string) qrcode.RecoveryLevel {
	switch strings.ToUpper(name) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateCartInviteQR generates a PNG QR code inviting collaborators to a cart
func (s *qrcodeService) GenerateCartInviteQR(cartID string) ([]byte, error) {
	jsonData, err := json.Marshal(CartInviteData{
		CartID: cartID,
		Type:   cartInviteType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseCartInviteQR parses scanned QR code text and returns the cart ID
func (s *qrcodeService) ParseCartInviteQR(qrData string) (string, error) {
	var data CartInviteData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", domainerrors.ErrInvalidInviteCode.WithDetails("not a cart invite")
	}

	if data.Type != cartInviteType {
		return "", domainerrors.ErrInvalidInviteCode.WithDetails("invalid QR code type: " + data.Type)
	}

	cartID := strings.TrimSpace(data.CartID)
	if cartID == "" {
		return "", domainerrors.ErrInvalidInviteCode.WithDetails("missing cart id")
	}

	return cartID, nil
}
