package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/internal/auth"
	"github.com/me/voirie/internal/config"
	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/logging"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/pkg/model"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger   *slog.Logger
	cfg      *config.Config
	sessions session.Store
	state    *auth.State
	backend  *api.Client
	authn    auth.Authenticator
)

// defaultServer returns the default backend URL, checking the
// VOIRIE_API_BASE_URL env var first.
func defaultServer() string {
	if s := os.Getenv("VOIRIE_API_BASE_URL"); s != "" {
		return s
	}
	return "http://localhost:8081"
}

// newTokenSource picks the request authorizer for the configured
// mode. CLI invocations are one-shot, so local mode reads the cached
// backend JWT from the session file, while the firebase modes rebuild
// a provider handle from the persisted refresh token and mint a
// fresh ID token per run.
func newTokenSource(mode model.AuthMode, sessions session.Store, state *auth.State, fb *firebase.Client) api.TokenSource {
	if mode.UsesProvider() {
		return &auth.ProviderTokenSource{State: state, Store: sessions, FB: fb}
	}
	return &auth.StoreTokenSource{Store: sessions}
}

// NewRootCmd creates the root cobra command for the voirie CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "voirie",
		Short: "Voirie — signalement des dégradations de la chaussée",
		Long:  "Voirie reports road surface defects and tracks their treatment by the road-maintenance service.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)

			cfg = config.Load()
			if flagServer != "" {
				cfg.APIBaseURL = config.NormalizeBaseURL(flagServer)
			}

			fileStore, err := session.DefaultFileStore()
			if err != nil {
				return err
			}
			sessions = fileStore
			state = auth.NewState(cfg.AuthMode)

			var fb *firebase.Client
			if cfg.FirebaseAPIKey != "" {
				fb = firebase.NewClient(cfg.FirebaseAPIKey, cfg.FirebaseProjectID, logger)
			}

			backend = api.NewClient(cfg.APIRoot(), cfg.AdminKey, newTokenSource(cfg.AuthMode, sessions, state, fb), logger)
			authn = auth.New(cfg.AuthMode, backend, fb, sessions, state, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "Backend URL (or VOIRIE_API_BASE_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newReportCmd(),
		newListCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newSyncCmd(),
	)

	return root
}
