package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cursorcloak/cursorcloak/internal/config"
)

const appName = "CursorCloak"

var version = "dev"

var (
	logLevel   string
	logFile    string
	configPath string
	verbose    bool
	noTray     bool
)

var rootCmd = &cobra.Command{
	Use:   "cursorcloak",
	Short: "Hide the mouse pointer system-wide",
	Long: `CursorCloak hides the mouse pointer everywhere on the desktop.

Toggle it from the tray icon, with Alt+H / Alt+S, or let it hide the
pointer automatically after a period without mouse movement.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error) (env: CURSORCLOAK_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file (env: CURSORCLOAK_LOG_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&configPath, "config", "", "settings file (env: CURSORCLOAK_CONFIG)")
	rootCmd.Flags().BoolVar(&noTray, "no-tray", false, "run without a tray icon (env: CURSORCLOAK_NO_TRAY)")

	rootCmd.AddCommand(restoreCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveOptions layers explicitly set flags over the environment.
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	opts, err := config.LoadOptions()
	if err != nil {
		return opts, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		opts.LogFile = logFile
	}
	if flags.Lookup("config") != nil && flags.Changed("config") {
		opts.ConfigPath = configPath
	}
	if flags.Lookup("no-tray") != nil && flags.Changed("no-tray") {
		opts.NoTray = noTray
	}
	if verbose {
		opts.LogLevel = "debug"
	}
	return opts, nil
}
