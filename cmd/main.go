package main

import (
	"fmt"
	"os"

	"go-medical-appointment/cmd/bootstrap"
	"go-medical-appointment/config"
	"go-medical-appointment/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "medical-appointment",
		Short:         "Medical appointment scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, bootstrap.NewLogger(cfg.App), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return m.Up()
			})
		},
	})

	// migrate down
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")
			if all {
				steps = 0
			} else if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withMigrator(func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	downCmd.Flags().Bool("all", false, "Roll back every migration")
	cmd.AddCommand(downCmd)

	return cmd
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed roles, the admin user, specialties and demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, _ := cmd.Flags().GetInt("doctors")
			patients, _ := cmd.Flags().GetInt("patients")

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewPostgresConnection(cfg.DB, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			seeder := database.NewSeeder(db, cfg.Admin, log)
			if err := seeder.Run(database.SeedOptions{Doctors: doctors, Patients: patients}); err != nil {
				return err
			}

			log.Info("Seed complete")
			return nil
		},
	}
	cmd.Flags().Int("doctors", 10, "Number of fake doctors to create")
	cmd.Flags().Int("patients", 50, "Number of fake patients to create")
	return cmd
}
