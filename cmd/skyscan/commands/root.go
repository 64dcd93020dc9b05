package commands

import (
	"fmt"
	"os"

	"github.com/panyam/skyscan/applog"
	"github.com/panyam/skyscan/config"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "skyscan",
	Short: "skyscan drives multi-messenger correlation runs",
	Long: `skyscan hosts the correlation run page and can drive runs against the
compute service from the terminal.

Settings come from the environment (SKYSCAN_*), optionally seeded from a
.env file (.env.dev when SKYSCAN_ENV=dev). Flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			level, err := applog.ParseLogLevel(logLevel)
			if err != nil {
				return err
			}
			applog.SetLogLevel(level)
		}
		if envFile == "" {
			envFile = config.EnvFile()
		}
		loaded, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		cfg = loaded
		applog.Debug("config: web=%s compute=%s static=%s templates=%s",
			cfg.WebAddr, cfg.ComputeURL, cfg.StaticDir, cfg.TemplatesDir)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to load (default: .env, or .env.dev when SKYSCAN_ENV=dev)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off (default: SKYSCAN_LOG_LEVEL or info)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
