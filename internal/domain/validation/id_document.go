package validation

import (
	"fmt"
	"regexp"
	"strings"

	"storefront/internal/errors"
)

// DocumentType is the kind of identity document a seller registers with.
type DocumentType string

const (
	DocumentNationalID     DocumentType = "national_id"
	DocumentPassport       DocumentType = "passport"
	DocumentDriversLicense DocumentType = "drivers_license"
	DocumentSSN            DocumentType = "ssn"
	DocumentOther          DocumentType = "other"
)

// Countries with their own document rules. Any other country uses the
// fallback rules.
const (
	CountryUnitedStates  = "United States"
	CountryUnitedKingdom = "United Kingdom"
	CountryCanada        = "Canada"
)

var (
	ErrDocumentRequired    = errors.New("document number, type and country are required")
	ErrDocumentLength      = errors.New("document number has an invalid length")
	ErrDocumentFormat      = errors.New("document number has an invalid format")
	ErrDocumentUnsupported = errors.New("document type is not accepted for this country")
)

type lengthRange struct {
	min, max int
}

func (r lengthRange) contains(n int) bool {
	return n >= r.min && (r.max == 0 || n <= r.max)
}

// documentLengths is the first, country independent gate.
var documentLengths = map[DocumentType]lengthRange{
	DocumentNationalID:     {6, 20},
	DocumentPassport:       {6, 12},
	DocumentDriversLicense: {6, 15},
	DocumentSSN:            {9, 9},
	DocumentOther:          {4, 20},
}

// documentRule checks the cleaned number. upper means the pattern is matched
// against the upper-cased number.
type documentRule struct {
	pattern *regexp.Regexp
	upper   bool
	check   func(string) bool
}

func (r documentRule) valid(number string) bool {
	if r.check != nil {
		return r.check(number)
	}
	if r.upper {
		number = strings.ToUpper(number)
	}

	return r.pattern.MatchString(number)
}

func alnum(min, max int) documentRule {
	return documentRule{pattern: regexp.MustCompile(rangePattern("[A-Z0-9]", min, max)), upper: true}
}

func digits(min, max int) documentRule {
	return documentRule{pattern: regexp.MustCompile(rangePattern(`\d`, min, max))}
}

func rangePattern(class string, min, max int) string {
	if min == max {
		return fmt.Sprintf("^%s{%d}$", class, min)
	}

	return fmt.Sprintf("^%s{%d,%d}$", class, min, max)
}

// documentRules maps country then document type to its rule. A missing type
// in a listed country rejects the document.
var documentRules = map[string]map[DocumentType]documentRule{
	CountryUnitedStates: {
		DocumentSSN:            {check: validUSSocialSecurityNumber},
		DocumentDriversLicense: alnum(6, 15),
		DocumentPassport:       digits(6, 9),
		DocumentNationalID:     alnum(6, 20),
		DocumentOther:          alnum(4, 20),
	},
	CountryUnitedKingdom: {
		DocumentPassport:       digits(9, 9),
		DocumentDriversLicense: alnum(16, 16),
		DocumentNationalID:     alnum(6, 20),
		DocumentOther:          alnum(4, 20),
	},
	CountryCanada: {
		DocumentPassport:       {pattern: regexp.MustCompile(`^[A-Z]{2}\d{6}$`), upper: true},
		DocumentDriversLicense: alnum(6, 15),
		DocumentNationalID:     alnum(6, 20),
		DocumentOther:          alnum(4, 20),
	},
}

var fallbackDocumentRules = map[DocumentType]documentRule{
	DocumentPassport:       digits(6, 12),
	DocumentDriversLicense: alnum(6, 15),
	DocumentNationalID:     alnum(6, 20),
	DocumentSSN:            digits(9, 9),
	DocumentOther:          alnum(4, 20),
}

// IDDocument validates an identity document number for a document type
// issued by country (the country display name). Whitespace is ignored.
func IDDocument(number string, docType DocumentType, country string) error {
	if number == "" || docType == "" || country == "" {
		return ErrDocumentRequired
	}

	cleaned := stripSpaces(number)

	length, ok := documentLengths[docType]
	if !ok {
		length = lengthRange{min: 4}
	}
	if !length.contains(len(cleaned)) {
		return ErrDocumentLength
	}

	rules, ok := documentRules[country]
	if !ok {
		rules = fallbackDocumentRules
	}

	rule, ok := rules[docType]
	if !ok {
		return ErrDocumentUnsupported
	}
	if !rule.valid(cleaned) {
		return ErrDocumentFormat
	}

	return nil
}

// DocumentTypes lists the document types in display order.
var DocumentTypes = []DocumentType{
	DocumentNationalID,
	DocumentPassport,
	DocumentDriversLicense,
	DocumentSSN,
	DocumentOther,
}

// validUSSocialSecurityNumber checks the SSN area, group and serial: nine
// digits, area not 000, 666 or 9xx, group not 00, serial not 0000.
func validUSSocialSecurityNumber(number string) bool {
	if len(number) != 9 || DigitsOnly(number) != number {
		return false
	}

	area, group, serial := number[:3], number[3:5], number[5:]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}

	return group != "00" && serial != "0000"
}
