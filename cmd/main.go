package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Srijansendry/Srijan/config"
	"github.com/Srijansendry/Srijan/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	rootCmd := &cobra.Command{
		Use:   "studyverse",
		Short: "StudyVerse storefront API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(expirePendingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %v", err)
	}
	return cfg, db, nil
}

func prepareDatabase(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	if err := config.Seed(ctx, db, cfg); err != nil {
		return fmt.Errorf("failed to seed database: %v", err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := prepareDatabase(cmd.Context(), cfg, db); err != nil {
				return err
			}
			return server.Start(cfg, db)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed default settings and the owner account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := prepareDatabase(cmd.Context(), cfg, db); err != nil {
				return err
			}
			log.Println("Database migrated")
			return nil
		},
	}
}

func expirePendingCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "expire-pending",
		Short: "Fail orders left pending or awaiting verification for too long",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			if olderThan <= 0 {
				olderThan = cfg.VerificationTTL
			}
			if olderThan <= 0 {
				log.Println("Order expiry disabled: set VERIFICATION_TTL or --older-than")
				return nil
			}

			expired, err := server.NewServices(db, cfg).Purchases.ExpireStaleOrders(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			log.Printf("Expired %d stale orders older than %s", expired, olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "age after which pending orders fail (defaults to VERIFICATION_TTL)")
	return cmd
}
