// Package cli implements storefrontctl, the operator tool for checking
// payment and identity input and inspecting device storage.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/storage"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// OpenStorage opens the device storage used by the storage commands.
	OpenStorage func(ctx context.Context, logger *slog.Logger) (repository.DeviceStorage, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command with storage opened from config.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenStorage: openConfiguredStorage})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storefrontctl",
		Short: "Storefront operator tool",

		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewStorageCommand(opts))

	return cmd
}

func openConfiguredStorage(ctx context.Context, logger *slog.Logger) (repository.DeviceStorage, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	return storage.Open(ctx, cfg, logger)
}

// logger writes to stderr so that JSON output stays parseable.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// print writes v as indented JSON, or text() in text mode.
func (o *RootOptions) print(w io.Writer, v any, text func() string) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	}

	_, err := fmt.Fprintln(w, text())

	return err
}
