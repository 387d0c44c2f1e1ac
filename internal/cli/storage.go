package cli

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/util"

	"github.com/spf13/cobra"
)

// KeyStatus reports whether a known storage key holds a value.
type KeyStatus struct {
	Key     string `json:"key"`
	Present bool   `json:"present"`
	Bytes   int    `json:"bytes"`
}

// KnownKeys lists every key the storefront writes.
var KnownKeys = []string{
	repository.KeyUserCarts,
	repository.KeySelectedCartID,
	repository.KeyCartStorageMigrated,
	repository.KeyGuestCart,
	repository.KeyCheckoutAddress,
	repository.KeyCheckoutPaymentMethod,
	repository.KeyProfilePaymentMethods,
	repository.KeyPaymentMethods,
	repository.KeyAddresses,
}

// NewStorageCommand creates the storage command and its subcommands.
func NewStorageCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect and edit device storage",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:          "keys",
			Short:        "List the storefront keys and whether they are set",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE: withStorage(rootOpts, func(cmd *cobra.Command, s repository.DeviceStorage, _ []string) error {
				statuses := make([]KeyStatus, 0, len(KnownKeys))
				for _, key := range KnownKeys {
					value, err := s.GetItem(cmd.Context(), key)
					switch {
					case err == nil:
						statuses = append(statuses, KeyStatus{Key: key, Present: true, Bytes: len(value)})
					case errors.Is(err, repository.ErrStorageKeyNotFound):
						statuses = append(statuses, KeyStatus{Key: key})
					default:
						return fmt.Errorf("failed to read %s: %w", key, err)
					}
				}

				return rootOpts.print(cmd.OutOrStdout(), statuses, func() string {
					var b strings.Builder
					for i, status := range statuses {
						if i > 0 {
							b.WriteByte('\n')
						}
						if status.Present {
							fmt.Fprintf(&b, "%-26s %s", status.Key, util.FormatBytes(int64(status.Bytes)))
						} else {
							fmt.Fprintf(&b, "%-26s -", status.Key)
						}
					}

					return b.String()
				})
			}),
		},
		&cobra.Command{
			Use:          "get <key>",
			Short:        "Print the value stored under a key",
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: withStorage(rootOpts, func(cmd *cobra.Command, s repository.DeviceStorage, args []string) error {
				value, err := s.GetItem(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get %s: %w", args[0], err)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

				return err
			}),
		},
		&cobra.Command{
			Use:          "set <key> <value>",
			Short:        "Store a raw value under a key",
			Args:         cobra.ExactArgs(2),
			SilenceUsage: true,
			RunE: withStorage(rootOpts, func(cmd *cobra.Command, s repository.DeviceStorage, args []string) error {
				if err := s.SetItem(cmd.Context(), args[0], args[1]); err != nil {
					return fmt.Errorf("failed to set %s: %w", args[0], err)
				}

				return nil
			}),
		},
		&cobra.Command{
			Use:          "remove <key>...",
			Short:        "Remove keys",
			Args:         cobra.MinimumNArgs(1),
			SilenceUsage: true,
			RunE: withStorage(rootOpts, func(cmd *cobra.Command, s repository.DeviceStorage, args []string) error {
				if err := s.RemoveItems(cmd.Context(), args...); err != nil {
					return fmt.Errorf("failed to remove keys: %w", err)
				}

				return nil
			}),
		},
		&cobra.Command{
			Use:          "clear-user-data",
			Short:        "Remove the data that belongs to the signed-in user",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE: withStorage(rootOpts, func(cmd *cobra.Command, s repository.DeviceStorage, _ []string) error {
				if err := s.RemoveItems(cmd.Context(), repository.UserDataKeys...); err != nil {
					return fmt.Errorf("failed to clear user data: %w", err)
				}

				return nil
			}),
		},
	)

	return cmd
}

// withStorage opens the device storage around fn and closes it afterwards.
func withStorage(
	rootOpts *RootOptions,
	fn func(cmd *cobra.Command, s repository.DeviceStorage, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
			cmd.SetContext(ctx)
		}

		s, err := rootOpts.OpenStorage(ctx, rootOpts.logger(cmd))
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.Close())
		}()

		return fn(cmd, s, args)
	}
}
