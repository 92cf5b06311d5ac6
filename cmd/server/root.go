package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/healthtracker/internal/config"
	"github.com/mmynk/healthtracker/pkg/logging"
)

// cliState is shared by the subcommands of one invocation.
type cliState struct {
	configPath string
	envFile    string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	serve := newServeCmd(st)
	root := &cobra.Command{
		Use:   "healthtracker",
		Short: "Personal health tracking web server",
		Long: `Healthtracker serves a small web application for recording body
measurements, vital signs and activity, and for running BMI, body fat and
daily calorie calculators.

Settings come from built-in defaults, then the --config TOML file, then
the --env-file, then the process environment (PORT, DB_PATH, JWT_SECRET,
SESSION_TTL, LOG_LEVEL, LOG_FILE, ENV, BCRYPT_COST, COOKIE_SECURE).

Running without a subcommand is the same as "healthtracker serve".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// calc is a pure computation and needs no settings.
			if cmd.Name() == "calc" || cmd.Name() == "help" {
				return nil
			}

			cfg, err := config.Load(st.configPath, st.envFile)
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.logger, st.logCloser = logging.New(logging.Options{
				Level:  cfg.LogLevel,
				File:   cfg.LogFile,
				Output: cmd.ErrOrStderr(),
			})
			slog.SetDefault(st.logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.logCloser != nil {
				return st.logCloser.Close()
			}
			return nil
		},
		RunE: serve.RunE,
	}

	root.PersistentFlags().StringVar(&st.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&st.envFile, "env-file", ".env", "path to a .env file (ignored when missing)")

	root.AddCommand(serve, newMigrateCmd(st), newCalcCmd())
	return root
}
