package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cursorcloak/cursorcloak/internal/win32"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Reload the configured pointer scheme",
	Long:  "Restores the system pointers, e.g. after a previous run was killed while the pointer was hidden.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}
		closer, err := setupLogging(opts.LogLevel, opts.LogFile)
		if err != nil {
			log.Warn().Err(err).Msg("logging to console only")
		}
		defer closer.Close()

		if err := win32.NewCursors().ReloadSystemCursors(); err != nil {
			return fmt.Errorf("restore pointers: %w", err)
		}
		log.Info().Msg("system pointers restored")
		return nil
	},
}
