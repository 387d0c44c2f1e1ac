package qrcode

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestQRCodeService(size int, level string) *qrcodeService {
	return NewQRCodeService(&config.Config{
		QRCode: &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level},
	}).(*qrcodeService)
}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  qrcode.RecoveryLevel
	}{
		{"Low error correction", "L", qrcode.Low},
		{"Medium error correction", "M", qrcode.Medium},
		{"Quartile maps to high", "q", qrcode.High},
		{"Highest error correction", "H", qrcode.Highest},
		{"Default error correction", "invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.level))
		})
	}
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	svc := NewQRCodeService(&config.Config{}).(*qrcodeService)

	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
}

func TestQRCodeService_GenerateCartInviteQR(t *testing.T) {
	for _, size := range []int{128, 256, 512} {
		svc := createTestQRCodeService(size, "M")

		qrBytes, err := svc.GenerateCartInviteQR(uuid.NewString())
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(qrBytes))
		require.NoError(t, err)
		assert.Equal(t, size, img.Bounds().Dx())
	}
}

func TestQRCodeService_ParseCartInviteQR(t *testing.T) {
	svc := createTestQRCodeService(256, "M")
	cartID := uuid.NewString()

	payload, err := json.Marshal(CartInviteData{CartID: cartID, Type: cartInviteType})
	require.NoError(t, err)

	parsed, err := svc.ParseCartInviteQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, cartID, parsed)
}

func TestQRCodeService_ParseCartInviteQR_Invalid(t *testing.T) {
	svc := createTestQRCodeService(256, "M")

	tests := []struct {
		name string
		data string
	}{
		{"Invalid JSON", "not json"},
		{"Wrong type", `{"cart_id":"abc","type":"subscription"}`},
		{"Missing cart id", `{"cart_id":"  ","type":"cart_invite"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseCartInviteQR(tt.data)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInviteCode)
		})
	}
}
