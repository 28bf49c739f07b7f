// ABOUTME: Root command for the moto-admin CLI
// ABOUTME: Handles global flags, configuration, and the shared client environment

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/markalston/moto-admin/internal/api"
	"github.com/markalston/moto-admin/internal/config"
	"github.com/markalston/moto-admin/internal/gateway"
	"github.com/markalston/moto-admin/internal/logger"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL      string
	sessionFile string
	jsonOutput  bool
)

// Exit codes
const (
	exitOK      = 0
	exitUsage   = 1 // bad flags, invalid input, failed check
	exitBackend = 2 // backend or network error
	exitSession = 3 // no session or the token was rejected
)

const redisPrefix = "moto-admin:session"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "moto-admin",
	Short: "Back office for the motorcycle parts shop",
	Long: `moto-admin manages orders, customers, and the catalog of the motorcycle parts shop.

Run "moto-admin console" for the interactive console, or use the subcommands in scripts.

Environment Variables:
  MOTO_ADMIN_API_URL        Backend API URL (default: http://localhost:3000/api)
  MOTO_ADMIN_SESSION_FILE   Session file (default: <config dir>/moto-admin/session.yaml)
  MOTO_ADMIN_SESSION_REDIS  Redis URL for a shared session store
  MOTO_ADMIN_CONFIG         Optional YAML config file
  LOG_LEVEL, LOG_FORMAT     Logging (debug|info|warn|error, text|json)

Exit codes:
  0 - Success
  1 - Usage or validation error
  2 - Backend or network error
  3 - Not logged in or session rejected`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Stderr)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MOTO_ADMIN_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Session file path (overrides MOTO_ADMIN_SESSION_FILE and disables Redis)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if sessionFile != "" {
		cfg.SessionFile = sessionFile
		cfg.SessionRedis = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env is everything a command needs to talk to the backend
type env struct {
	cfg     *config.Config
	session *session.Manager
	gw      *gateway.Gateway
	client  *api.Client
	close   func()
}

func newEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, usageError{err}
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mgr := session.NewManager(store, nil)
	if err := mgr.Reload(ctx); err != nil {
		closeStore()
		return nil, err
	}

	gw := gateway.New(mgr, gateway.Options{BaseURL: cfg.APIURL, Timeout: cfg.Timeout, Retries: cfg.Retries})
	client := api.New(gw, cfg.CacheTTL)
	return &env{
		cfg:     cfg,
		session: mgr,
		gw:      gw,
		client:  client,
		close: func() {
			client.Close()
			closeStore()
		},
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionRedis != "" {
		rs, err := session.NewRedisStore(ctx, cfg.SessionRedis, redisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	return session.NewFileStore(cfg.SessionFile, cfg.WatchInterval), func() {}, nil
}

// usageError marks failures caused by the caller's input
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCodeFor maps an error to the process exit code
func exitCodeFor(err error) int {
	var (
		uerr usageError
		cerr gateway.CredentialError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &uerr), errors.As(err, &cerr), api.IsValidation(err), errors.Is(err, gateway.ErrNotImage):
		return exitUsage
	case gateway.IsUnauthorized(err), errors.Is(err, session.ErrNoSession):
		return exitSession
	default:
		return exitBackend
	}
}

type runFunc func(ctx context.Context, w io.Writer, e *env, args []string) int

// run adapts a runFunc to cobra, exiting with its code
func run(fn runFunc) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := execute(ctx, cmd.OutOrStdout(), fn, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}
}

func execute(ctx context.Context, w io.Writer, fn runFunc, args []string) int {
	e, err := newEnv(ctx)
	if err != nil {
		return fail(w, err)
	}
	defer e.close()
	return fn(ctx, w, e, args)
}

// requireSession fails fast when no token is stored, before any request
func requireSession(ctx context.Context, w io.Writer, e *env) bool {
	if e.session.HasToken(ctx) {
		return true
	}
	fail(w, session.ErrNoSession)
	return false
}
