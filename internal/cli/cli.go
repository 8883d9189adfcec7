package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/figureworks/backoffice/internal/app"
	"github.com/figureworks/backoffice/internal/database"
	"github.com/figureworks/backoffice/internal/migration"
	"github.com/figureworks/backoffice/internal/seeder"
	reportsvc "github.com/figureworks/backoffice/internal/service/report"
)

// NewRootCommand builds the root backoffice CLI command.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Retail back-office analytics toolkit",
	}

	root.AddCommand(newStartCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newWorkerCmd())

	return root
}

// Execute runs the backoffice CLI.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "start",
		Aliases: []string{"run"},
		Short:   "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			application := fx.New(app.Module)
			if err := application.Start(cmd.Context()); err != nil {
				return err
			}
			<-cmd.Context().Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return application.Stop(stopCtx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations for the SQL store",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var mig *migration.Migrator
			opts := fx.Options(app.Core, database.Module, migration.Module, fx.Populate(&mig))
			return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
				if err := mig.Up(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")
			var mig *migration.Migrator
			opts := fx.Options(app.Core, database.Module, migration.Module, fx.Populate(&mig))
			return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
				if err := mig.Down(ctx, steps, all); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migration steps to rollback")
	downCmd.Flags().Bool("all", false, "Rollback all applied migrations")

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Generate a batch of sample orders into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *seeder.Seeder
			opts := fx.Options(app.Core, fx.Provide(seeder.New), fx.Populate(&seed))
			return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
				count, err := seed.Orders(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d orders\n", count)
				return nil
			})
		},
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render reports on the terminal",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "daily",
		Short: "Print the daily report product breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *reportsvc.Service
			var seed *seeder.Seeder
			opts := fx.Options(app.Core, fx.Provide(seeder.New), fx.Populate(&svc, &seed))
			return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
				// The memory store starts empty in a one-shot process.
				if _, err := seed.Orders(ctx); err != nil {
					return err
				}
				daily, err := svc.Daily(ctx, "")
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "orders: %d  revenue: %.2f  avg order value: %.2f\n\n",
					daily.Summary.OrderCount, daily.Summary.Revenue, daily.Summary.AvgOrderValue)

				table := tablewriter.NewWriter(out)
				table.Header("Product", "IP", "Category", "Scale", "Qty", "Revenue", "Avg Price")
				for _, row := range daily.Products {
					if err := table.Append([]string{
						row.ProductName,
						row.IP,
						row.Category,
						row.Scale,
						fmt.Sprintf("%d", row.Quantity),
						fmt.Sprintf("%.2f", row.Revenue),
						fmt.Sprintf("%.2f", row.AvgPrice),
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	})
	return cmd
}

func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage background workers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the status-change consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			application := fx.New(app.Worker)
			if err := application.Start(cmd.Context()); err != nil {
				return err
			}
			<-cmd.Context().Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return application.Stop(stopCtx)
		},
	})
	return cmd
}

func runWithApp(ctx context.Context, opts fx.Option, fn func(context.Context) error) error {
	application := fx.New(opts, fx.NopLogger)
	if err := application.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = application.Stop(stopCtx)
	}()
	return fn(ctx)
}
