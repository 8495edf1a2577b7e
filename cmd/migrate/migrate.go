package migrate

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dinerozz/tabsnoop-backend/config"
	"github.com/dinerozz/tabsnoop-backend/internal/repository"
	"github.com/dinerozz/tabsnoop-backend/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func GetMigrateCmd(cfg *config.Config) *cobra.Command {
	var down bool

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			db, err := openDB(cfg)
			if err != nil {
				log.Fatal("❌ Failed to open database:", err)
			}
			defer db.Close()

			m, err := migrations.New(db.DB, db.DriverName())
			if err != nil {
				log.Fatal("❌ Failed to initialize migrations:", err)
			}

			if down {
				err := m.Down()
				if err != nil {
					if errors.Is(err, migrate.ErrNoChange) {
						fmt.Println("⚠️ No migrations to rollback.")
						return
					} else if strings.Contains(err.Error(), "dirty") {
						fmt.Println("⚠️ Database is in a dirty state. Forcing version fix...")
						m.Force(0)
						m.Down()
					} else {
						log.Fatal("❌ Failed to apply down migrations:", err)
					}
				} else {
					fmt.Println("✅ Migrations rolled back successfully!")
				}
				return
			}

			err = m.Up()
			if err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Println("⚠️ No new migrations to apply.")
					return
				}
				log.Fatal("❌ Failed to apply up migrations:", err)
			}

			fmt.Println("✅ Migrations applied successfully!")
		},
	}

	migrateCmd.Flags().BoolVarP(&down, "down", "d", false, "Rollback migrations")

	return migrateCmd
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return repository.NewRepository(cfg.DB)
	case config.StoreSQLite:
		return repository.NewSQLiteRepository(cfg.DB.SQLitePath)
	}
	return nil, fmt.Errorf("store backend %q has no schema to migrate", cfg.Store)
}
