// Package cli implements the memberctl commands on top of the session and domain services.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/config"
	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/events"
	"github.com/creatorhub/memberkit/internal/observability"
	"github.com/creatorhub/memberkit/internal/persistence"
	"github.com/creatorhub/memberkit/internal/service"
	"github.com/creatorhub/memberkit/internal/worker"
)

// Runtime holds the services a command needs.
type Runtime struct {
	Session   *credentials.Session
	Sessions  *service.SessionService
	Creator   *service.CreatorService
	Members   *service.MemberService
	Locations *service.LocationService
	Close     func()
}

// RuntimeFactory builds a Runtime once per invocation.
type RuntimeFactory func(ctx context.Context) (*Runtime, error)

// NewRuntime wires the client stack from environment configuration.
func NewRuntime(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, closeStore, err := persistence.OpenCredentialStore(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	session := credentials.NewSession(store)

	exec, err := client.New(
		client.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout()},
		client.Dependencies{
			Session: session,
			Logger:  logger,
			Metrics: observability.NewMetrics(prometheus.NewRegistry()),
		},
	)
	if err != nil {
		closeStore()
		return nil, err
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartSessionAuditWorker(service.NewSessionAuditService(dispatcher, logger))

	auth := service.NewAuthService(exec)
	return &Runtime{
		Session: session,
		Sessions: service.NewSessionService(service.SessionDependencies{
			Auth:       auth,
			Session:    session,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		Creator:   service.NewCreatorService(exec),
		Members:   service.NewMemberService(exec),
		Locations: service.NewLocationService(exec),
		Close: func() {
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}

type runtimeKey struct{}

// NewRootCommand returns the memberctl command tree.
func NewRootCommand(factory RuntimeFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "memberctl",
		Short: "Talk to the creator membership API from the terminal",
		Long: `memberctl signs in to the creator membership API, keeps the session in the
configured credential store and calls the member, campaign and location endpoints.

Configuration comes from the environment or a .env file (API_BASE_URL,
CREDENTIAL_STORE, ...). Results are printed as JSON on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
			return nil
		},
	}

	root.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newPersonaCommand(),
		newCampaignCommand(),
		newMemberCommand(),
		newLocationsCommand(),
	)
	return root
}

// ExecuteContext runs memberctl with the environment backed runtime and releases
// it once the command returns.
func ExecuteContext(ctx context.Context) error {
	var opened *Runtime
	root := NewRootCommand(func(ctx context.Context) (*Runtime, error) {
		rt, err := NewRuntime(ctx)
		opened = rt
		return rt, err
	})
	err := root.ExecuteContext(ctx)
	if opened != nil && opened.Close != nil {
		opened.Close()
	}
	return err
}

func runtimeFrom(cmd *cobra.Command) (*Runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*Runtime)
	if !ok {
		return nil, errors.New("runtime not initialised")
	}
	return rt, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns executor errors into a short line for the terminal.
func describe(err error) error {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Kind {
	case client.KindAuthRequired:
		return errors.New("not logged in: run 'memberctl login' first")
	case client.KindHTTP:
		return fmt.Errorf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	}
	if apiErr.Err != nil {
		return fmt.Errorf("%s: %w", apiErr.Message, apiErr.Err)
	}
	return apiErr
}
