package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"benta/internal/config"
	"benta/internal/database"
	"benta/internal/logging"

	"gorm.io/gorm"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "benta",
		Short:         "Catalog and sales backend for the Benta store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newWorkerCommand(),
	)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// bootstrap loads configuration and configures logging.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// openDatabase connects and migrates the schema.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			if _, err := openDatabase(cfg); err != nil {
				return err
			}
			log.Printf("Database migrated (%s)", cfg.DBDriver)
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var withCatalog bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin user and, optionally, sample products",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
				return err
			}
			if withCatalog {
				return database.SeedCatalog(db)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCatalog, "catalog", true, "also insert the sample catalog when it is empty")
	return cmd
}
