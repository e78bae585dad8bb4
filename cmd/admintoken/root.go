package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"audio-tour-service/internal/auth"
	authRepoPg "audio-tour-service/internal/auth/postgres"
	"audio-tour-service/internal/config"
	"audio-tour-service/internal/database"
)

type options struct {
	configFile string
	email      string
	ttl        time.Duration
	verify     bool
}

// userLookup is swapped in tests; the default opens the configured database.
var userLookup = func(ctx context.Context, cfg *config.Config) (auth.UserFinder, func(), error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return authRepoPg.NewUserRepository(authRepoPg.NewSQLDB(db)), func() { db.Close() }, nil
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "admintoken",
		Short: "Mint an access token for the statistics API",
		Long: `admintoken signs a token with the service's JWT secret.

Example usage:
  admintoken --email admin@example.com
  admintoken --email admin@example.com --ttl 2h --verify`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default is ./tour.yaml)")
	cmd.Flags().StringVar(&opts.email, "email", "", "e-mail of the account the token is issued for")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 0, "token lifetime (default auth.access_token_ttl)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check that the account exists, is active and is an admin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := config.Load(config.Options{ConfigFile: opts.configFile})
	if err != nil {
		return err
	}

	if opts.verify {
		users, closeFn, err := userLookup(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		u, err := users.FindUserByEmail(cmd.Context(), opts.email)
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return fmt.Errorf("no user with e-mail %q", opts.email)
		case err != nil:
			return err
		case !u.IsActive:
			return fmt.Errorf("user %q has not confirmed registration", opts.email)
		case u.Role != auth.RoleAdmin:
			return fmt.Errorf("user %q has role %q, not admin", opts.email, u.Role)
		}
	}

	ttl := opts.ttl
	if ttl <= 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(opts.email, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
