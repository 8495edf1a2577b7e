package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dinerozz/tabsnoop-backend/cmd/migrate"
	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/internal/report"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	service "github.com/dinerozz/tabsnoop-backend/internal/service/summary"
	"github.com/dinerozz/tabsnoop-backend/pkg/utils"
	"github.com/dinerozz/tabsnoop-backend/server"
	"github.com/spf13/cobra"
)

func GetRootCmd(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabsnoop",
		Short: "Active tab time tracker",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.RunServer(config)
		},
	})

	rootCmd.AddCommand(migrate.GetMigrateCmd(config))
	rootCmd.AddCommand(getSummaryCmd(config))
	rootCmd.AddCommand(getClearCmd(config))

	return rootCmd
}

func getSummaryCmd(cfg *config.Config) *cobra.Command {
	var (
		date  string
		width int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print time spent per domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cfg.Tracker.Location()
			if err != nil {
				return err
			}

			day := time.Now().In(loc)
			if date != "" {
				day, err = utils.ParseLocalDate(date, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q, use YYYY-MM-DD", date)
				}
			}

			summarySrv, closeRepo, err := openSummaryService(cmd.Context(), cfg, loc)
			if err != nil {
				return err
			}
			defer closeRepo()

			summary, err := summarySrv.GetSummary(cmd.Context(), day)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.Render(summary, width))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to total (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&width, "width", 30, "Bar chart width")

	return cmd
}

func getClearCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase all stored domain records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear data without --yes")
			}

			loc, err := cfg.Tracker.Location()
			if err != nil {
				return err
			}

			summarySrv, closeRepo, err := openSummaryService(cmd.Context(), cfg, loc)
			if err != nil {
				return err
			}
			defer closeRepo()

			if err := summarySrv.ClearAll(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ All data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm erasing all data")

	return cmd
}

func openSummaryService(ctx context.Context, cfg *config.Config, loc *time.Location) (service.SummaryService, func() error, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	return service.NewSummaryService(repo, loc), closeRepo, nil
}
