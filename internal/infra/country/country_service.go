// Package country fetches the country list used by address and seller forms.
package country

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const fetchKey = "countries"

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type countryService struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger

	group singleflight.Group // concurrent form mounts share one request

	mu        sync.RWMutex
	countries []entity.Country
}

// NewCountryService creates the lookup. The list is fetched on first use
// and kept for the life of the process.
func NewCountryService(params Params) service.CountryService {
	return &countryService{
		url:        params.Config.Country.URL,
		httpClient: &http.Client{Timeout: params.Config.Country.Timeout},
		logger:     params.Logger,
	}
}

type countriesResponse struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
	Data  []struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		DialCode string `json:"dial_code"`
	} `json:"data"`
}

func (s *countryService) Countries(ctx context.Context) ([]entity.Country, error) {
	if cached := s.cached(); cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do(fetchKey, func() (any, error) {
		if cached := s.cached(); cached != nil {
			return cached, nil
		}

		countries, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.countries = countries
		s.mu.Unlock()

		return countries, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch countries", slog.Any("error", err))

		return nil, domainerrors.ErrRemoteUnavailable.WithDetails(err.Error())
	}

	return slices.Clone(v.([]entity.Country)), nil
}

func (s *countryService) cached() []entity.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.countries == nil {
		return nil
	}

	return slices.Clone(s.countries)
}

func (s *countryService) fetch(ctx context.Context) ([]entity.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build countries request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch countries")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("countries service returned %d", resp.StatusCode)
	}

	var body countriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode countries")
	}
	if body.Error {
		return nil, errors.Errorf("countries service error: %s", body.Msg)
	}

	countries := make([]entity.Country, 0, len(body.Data))
	for _, c := range body.Data {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		countries = append(countries, entity.Country{
			Name:     strings.TrimSpace(c.Name),
			Code:     c.Code,
			DialCode: c.DialCode,
		})
	}
	slices.SortFunc(countries, func(a, b entity.Country) int {
		return strings.Compare(a.Name, b.Name)
	})

	return countries, nil
}
