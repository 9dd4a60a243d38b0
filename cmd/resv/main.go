// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Resv using the Cobra
// library. It defines the root command (which launches the interactive
// TUI), the scripted subcommands (login, equipment, reservation,
// export, ...), flags, and the configuration bootstrap.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/resvlab/resv/buildvars"
	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/logging"
	"github.com/resvlab/resv/internal/routes"
	"github.com/resvlab/resv/internal/session"
	"github.com/resvlab/resv/internal/store"
	"github.com/resvlab/resv/internal/tui"
)

var version = "dev" // this will be set by the linker
var cfgFile string

// app holds the wired dependency graph for the lifetime of one command.
type appContext struct {
	store   store.Store
	session *session.Store
	api     *api.Client
}

var app appContext

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()

	// Defaults, used when neither config file nor flags set a value.
	viper.SetDefault("api.base_url", "")
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8000)
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.dsn", "./resv.db")
	viper.SetDefault("language", "zh-CN")
	viper.SetDefault("debug", false)
}

// newRootCmd creates and configures a new root cobra command. Running
// without a subcommand launches the interactive TUI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resv",
		Short: "Resv is a terminal console for the equipment reservation system.",
		Long: `Resv talks to an equipment-reservation backend over its REST API:
browse equipment, look up and cancel reservations, and run the admin
console, all from the terminal. Session state persists between runs.

Running without a subcommand will launch the interactive TUI.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetDebug(viper.GetBool("debug"))
			i18n.Init(viper.GetString("language"))
			return wireApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.store != nil {
				app.store.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Deps{
				API:     app.api,
				Session: app.session,
				Routes:  routes.Default,
			})
		},
	}

	cmd.AddCommand(loginCmd)
	cmd.AddCommand(logoutCmd)
	cmd.AddCommand(whoamiCmd)
	cmd.AddCommand(equipmentCmd)
	cmd.AddCommand(reservationsCmd)
	cmd.AddCommand(reservationCmd)
	cmd.AddCommand(exportCmd)
	cmd.AddCommand(announcementsCmd)
	cmd.AddCommand(dbTablesCmd)

	cmd.Version = buildvars.VersionOrDefault(version)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.resv.yaml or ./.resv.yaml)")
	cmd.PersistentFlags().String("base-url", "", "Backend base URL (overrides host/port)")
	cmd.PersistentFlags().String("host", "localhost", "Backend host")
	cmd.PersistentFlags().Int("port", 8000, "Backend port")
	cmd.PersistentFlags().String("lang", "zh-CN", `Language ("zh-CN", "en")`)
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	viper.BindPFlag("api.base_url", cmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("api.host", cmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("api.port", cmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("language", cmd.PersistentFlags().Lookup("lang"))
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	return cmd
}

// wireApp builds the dependency graph: persisted store, session store,
// API client. The session store supplies the bearer token; the client's
// auth-expiry hook clears it.
func wireApp() error {
	ctx := context.Background()

	st, err := store.New(viper.GetString("store.type"), viper.GetString("store.dsn"))
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	app.store = st

	app.session = session.New(ctx, st)
	if lang := app.session.Language(); lang != "" {
		i18n.SetLang(lang)
	}

	timeout, err := time.ParseDuration(viper.GetString("api.timeout"))
	if err != nil {
		timeout = 30 * time.Second
	}
	app.api = api.New(api.Config{
		BaseURL: viper.GetString("api.base_url"),
		Host:    viper.GetString("api.host"),
		Port:    viper.GetInt("api.port"),
		Timeout: timeout,
	},
		api.WithTokenSource(app.session),
		api.WithHooks(api.Hooks{
			Notify: func(e *api.Error) {
				fmt.Fprintln(os.Stderr, i18n.T(e.Kind.MessageID()))
			},
			AuthExpired: func() {
				app.session.Logout(context.Background())
			},
		}),
	)
	app.session.AttachClient(app.api)
	return nil
}

// initConfig reads the configuration file and environment variables.
// Viper searches for .resv.yaml in the home and current directories; if
// none exists, a default one is written so the settings are
// discoverable.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".resv")
	}

	viper.SetEnvPrefix("RESV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			const defaultConfigPath = ".resv.yaml"
			defaultContent := `# Resv configuration file.
# This file is automatically generated with default values.

api:
  # Full base URL of the reservation backend. When empty, host and port
  # below are combined as http://<host>:<port>.
  base_url: ""
  host: localhost
  port: 8000
  # Per-request timeout. The export endpoint can be slow on large
  # datasets; don't set this below 30s.
  timeout: 30s

# Where the console keeps its own state (auth token, preferences).
# Supported types: "sqlite", "mysql", "postgres".
store:
  type: sqlite
  dsn: ./resv.db

# UI language. Supported: "zh-CN", "en".
language: zh-CN

debug: false
`
			if err := os.WriteFile(defaultConfigPath, []byte(defaultContent), 0644); err == nil {
				fmt.Println("No config file found. Created a default '.resv.yaml' in the current directory.")
			}
		}
	}
}
