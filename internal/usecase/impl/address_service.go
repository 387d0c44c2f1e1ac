package impl

import (
	"context"
	"fmt"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

type addressService struct {
	addresses service.AddressAPI
}

// NewAddressService creates the address book reader.
func NewAddressService(addresses service.AddressAPI) usecase.AddressUsecase {
	return &addressService{addresses: addresses}
}

func (s *addressService) ListAddresses(ctx context.Context, token, userID string) ([]entity.Address, error) {
	addresses, err := s.addresses.ListAddresses(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	return addresses, nil
}

func (s *addressService) DefaultAddress(ctx context.Context, token, userID string) (*entity.Address, error) {
	address, err := s.addresses.DefaultAddress(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get default address: %w", err)
	}

	return address, nil
}

func (s *addressService) AddAddress(ctx context.Context, token, userID string, address entity.Address) (*entity.Address, error) {
	address.ID = ""
	saved, err := s.addresses.AddAddress(ctx, token, userID, address)
	if err != nil {
		return nil, fmt.Errorf("failed to add address: %w", err)
	}

	return saved, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, token string, address entity.Address) (*entity.Address, error) {
	if address.ID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("address id is required")
	}

	saved, err := s.addresses.UpdateAddress(ctx, token, address)
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return saved, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, token, userID, addressID string) error {
	if err := s.addresses.DeleteAddress(ctx, token, userID, addressID); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	return nil
}

func (s *addressService) SetDefaultAddress(ctx context.Context, token, userID, addressID string) error {
	if err := s.addresses.SetDefaultAddress(ctx, token, userID, addressID); err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}

	return nil
}
