package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// CountryService provides the country list for address and ID forms.
type CountryService interface {
	Countries(ctx context.Context) ([]entity.Country, error)
}
