package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Astemirdum/book-exchange/exchange/app"
	"github.com/Astemirdum/book-exchange/exchange/config"
	"github.com/Astemirdum/book-exchange/exchange/migrations"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/Astemirdum/book-exchange/pkg/postgres"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "exchangectl",
		Short:        "Operator tools for the book exchange service",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newSweepCmd(),
		newTrustCmd(),
		newAbuseCmd(),
		newTokenCmd(),
		newSettleCmd(),
	)
	return root
}

// withService opens the database and builds the service for one command.
func withService(ctx context.Context, fn func(svc app.Operator) error) error {
	cfg := config.NewConfig()
	return app.WithOperator(ctx, &cfg, fn)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewConfig()
			db, err := postgres.NewPostgresDB(cmd.Context(), &cfg.Database, migrations.MigrationFiles)
			if err != nil {
				return err
			}
			db.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Cancel accepted exchanges past their confirmation deadline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(svc app.Operator) error {
				n, err := svc.ExpireStale(cmd.Context(), time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "expired %d exchanges\n", n)
				return nil
			})
		},
	}
}

func userArg(args []string) (uuid.UUID, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid user id %q", args[0])
	}
	return id, nil
}

func newTrustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trust <user-id>",
		Short: "Print a user's trust score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc app.Operator) error {
				score, err := svc.TrustScore(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), score)
			})
		},
	}
}

func newAbuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abuse <user-id>",
		Short: "Run the anti-abuse detectors for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(svc app.Operator) error {
				a, err := svc.AssessUser(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), a)
			})
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a signed access token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userArg(args)
			if err != nil {
				return err
			}
			switch role {
			case auth.RoleUser, auth.RoleModerator, auth.RoleAdmin:
			default:
				return errors.Errorf("unknown role %q", role)
			}
			token, err := auth.NewVerifier(config.NewConfig().Auth).Issue(auth.Identity{UserID: userID, Role: role}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleUser, "user, moderator or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

func newSettleCmd() *cobra.Command {
	var points int
	cmd := &cobra.Command{
		Use:   "settle <payment-id> <user-id>",
		Short: "Publish a settled payment to the payments topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := userArg(args[1:])
			if err != nil {
				return err
			}
			if points <= 0 {
				return errors.Errorf("points must be positive, got %d", points)
			}
			if err := app.PublishPayment(config.NewConfig().Kafka, args[0], userID, points); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "payment %s published\n", args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "points purchased")
	return cmd
}
