package cli

import (
	"fmt"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"
	"storefront/internal/errors"

	"github.com/spf13/cobra"
)

// ErrInvalidInput is returned when a checked value is rejected, so the
// process exits non-zero after the result is printed.
var ErrInvalidInput = errors.New("input is invalid")

// CheckResult is the outcome of one validate subcommand.
type CheckResult struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Type    string `json:"type,omitempty"`
	Last4   string `json:"last4,omitempty"`
	Network string `json:"network,omitempty"`
}

// NewValidateCommand creates the validate command and its subcommands.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check payment, phone and identity document input",
	}

	cmd.AddCommand(
		newCheckCommand(rootOpts, "card <number>", "Check a card number", func(_ *cobra.Command, value string) CheckResult {
			result := resultOf(validation.CardNumber(value))
			if result.Valid {
				result.Type = string(validation.DetectCardType(value))
				result.Last4 = validation.Last4(value)
			}

			return result
		}),
		newCheckCommand(rootOpts, "expiry <MM-YY>", "Check a card expiry date", func(_ *cobra.Command, value string) CheckResult {
			return resultOf(validation.Expiry(value, time.Now()))
		}),
		newCVVCommand(rootOpts),
		newMobileMoneyCommand(rootOpts),
		newIDDocumentCommand(rootOpts),
		newCheckCommand(rootOpts, "phone <number>", "Check a contact phone number", func(_ *cobra.Command, value string) CheckResult {
			return resultOf(validation.Phone(value))
		}),
	)

	return cmd
}

func newCVVCommand(rootOpts *RootOptions) *cobra.Command {
	var number string

	cmd := newCheckCommand(rootOpts, "cvv <code>", "Check a security code against the card network", func(_ *cobra.Command, value string) CheckResult {
		return resultOf(validation.CVV(value, validation.DetectCardType(number)))
	})
	cmd.Flags().StringVar(&number, "number", "", "card number the code belongs to")

	return cmd
}

func newMobileMoneyCommand(rootOpts *RootOptions) *cobra.Command {
	var network string

	cmd := newCheckCommand(rootOpts, "mobile-money <phone>", "Check a wallet number", func(_ *cobra.Command, value string) CheckResult {
		selected := entity.MobileNetwork(network)
		if selected == "" {
			detected, ok := validation.NetworkForPhone(value)
			if !ok {
				return CheckResult{Reason: validation.ErrUnknownNetwork.Error()}
			}
			selected = detected
		}

		result := resultOf(validation.MobileMoneyPhone(value, selected))
		result.Network = string(selected)

		return result
	})
	cmd.Flags().StringVar(&network, "network", "", "MTN, Vodafone or AirtelTigo; detected from the prefix when empty")

	return cmd
}

func newIDDocumentCommand(rootOpts *RootOptions) *cobra.Command {
	var docType, country string

	cmd := newCheckCommand(rootOpts, "id-document <number>", "Check an identity document number", func(_ *cobra.Command, value string) CheckResult {
		return resultOf(validation.IDDocument(value, validation.DocumentType(docType), country))
	})
	cmd.Flags().StringVar(&docType, "type", "", "national_id, passport, drivers_license, ssn or other")
	cmd.Flags().StringVar(&country, "country", "", "issuing country, e.g. \"United States\"")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newCheckCommand(rootOpts *RootOptions, use, short string, check func(*cobra.Command, string) CheckResult) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := check(cmd, args[0])

			if err := rootOpts.print(cmd.OutOrStdout(), result, result.text); err != nil {
				return err
			}
			if !result.Valid {
				return ErrInvalidInput
			}

			return nil
		},
	}
}

func resultOf(err error) CheckResult {
	if err != nil {
		return CheckResult{Reason: err.Error()}
	}

	return CheckResult{Valid: true}
}

func (r CheckResult) text() string {
	if !r.Valid {
		return "invalid: " + r.Reason
	}

	var extra string
	switch {
	case r.Type != "":
		extra = fmt.Sprintf(" (%s ending %s)", r.Type, r.Last4)
	case r.Network != "":
		extra = fmt.Sprintf(" (%s)", r.Network)
	}

	return "valid" + extra
}
