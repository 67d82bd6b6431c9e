package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		currentDB := database.New(db)

		deps, err := wire(cmd.Context(), cfg, currentDB)
		if err != nil {
			return err
		}
		defer deps.close()

		server, err := api.NewServer(cfg, currentDB,
			api.WithGate(deps.gate),
			api.WithContactService(deps.contact),
			api.WithImageIntake(deps.images),
		)
		if err != nil {
			return fmt.Errorf("initialize server: %w", err)
		}

		errChannel := make(chan error, 2)

		go server.Start(errChannel)

		// Listen for interrupt signals to gracefully shutdown the server
		go listenToInterrupt(errChannel)

		fatalErr := <-errChannel
		log.Info().Msgf("Closing server: %v", fatalErr)

		server.ShutdownGracefully(shutdownTimeout)
		deps.contact.Wait()
		return nil
	},
}

var migrateFlags struct {
	skipReport bool
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and seed the site settings row",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := models.Migrate(db); err != nil {
			return err
		}
		log.Info().Msg("migration complete")

		if migrateFlags.skipReport {
			return nil
		}
		_, err = models.ColumnMismatchReport(db, os.Stdout)
		return err
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print columns present in the database but unknown to the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		mismatches, err := models.ColumnMismatchReport(db, os.Stdout)
		if err != nil {
			return err
		}
		if mismatches > 0 {
			log.Warn().Int("columns", mismatches).Msg("database has columns the models do not map")
		}
		return nil
	},
}

var generateFlags struct {
	outPath string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate gorm/gen query helpers for every model",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		log.Info().Str("out", generateFlags.outPath).Msg("Generating query helpers...")
		models.GenerateQueries(db, generateFlags.outPath)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateFlags.skipReport, "skip-report", false, "do not print the column mismatch report")
	generateCmd.Flags().StringVar(&generateFlags.outPath, "out", "./generated", "output directory for the generated code")
}
