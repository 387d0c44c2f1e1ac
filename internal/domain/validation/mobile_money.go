package validation

import (
	"regexp"
	"strings"
	"unicode"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

var (
	ErrUnknownNetwork    = errors.New("unknown mobile money network")
	ErrMobileMoneyNumber = errors.New("phone number does not belong to the selected network")
)

var mobileMoneyPatterns = map[entity.MobileNetwork]*regexp.Regexp{
	entity.NetworkMTN:        regexp.MustCompile(`^0(24|25|53|54|55|59)\d{7}$`),
	entity.NetworkVodafone:   regexp.MustCompile(`^0(20|50|51|52|56)\d{7}$`),
	entity.NetworkAirtelTigo: regexp.MustCompile(`^0(26|27|28|57|58)\d{7}$`),
}

// MobileMoneyNetworks lists the supported networks in display order.
var MobileMoneyNetworks = []entity.MobileNetwork{
	entity.NetworkMTN,
	entity.NetworkVodafone,
	entity.NetworkAirtelTigo,
}

// MobileMoneyPhone validates a wallet phone number against its network's prefixes.
func MobileMoneyPhone(phone string, network entity.MobileNetwork) error {
	pattern, ok := mobileMoneyPatterns[network]
	if !ok {
		return ErrUnknownNetwork
	}

	if !pattern.MatchString(stripSpaces(phone)) {
		return ErrMobileMoneyNumber
	}

	return nil
}

// NetworkForPhone finds the network whose prefixes match phone.
func NetworkForPhone(phone string) (entity.MobileNetwork, bool) {
	cleaned := stripSpaces(phone)
	for _, network := range MobileMoneyNetworks {
		if mobileMoneyPatterns[network].MatchString(cleaned) {
			return network, true
		}
	}

	return "", false
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}
