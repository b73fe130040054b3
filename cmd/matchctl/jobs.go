package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wevolve-backend/internal/jobs"
	"wevolve-backend/internal/shared/config"
	"wevolve-backend/internal/shared/storage/db"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Validate and import job postings",
}

var jobsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an import document without storing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		return runValidate(cmd.OutOrStdout(), document)
	},
}

var jobsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and store the postings of an import document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	jobsImportCmd.Flags().String("db-url", "", "Database URL (defaults to DATABASE_URL)")

	jobsCmd.AddCommand(jobsValidateCmd, jobsImportCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runValidate(out io.Writer, document []byte) error {
	postings, err := jobs.ParseImport(document)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d postings valid\n", len(postings))
	return err
}

func runImport(cmd *cobra.Command, args []string) error {
	document, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	dbURL, _ := cmd.Flags().GetString("db-url")
	if dbURL == "" {
		dbURL = config.Load().DatabaseURL
	}
	if dbURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, dbURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return importInto(ctx, cmd.OutOrStdout(), jobs.NewService(&jobs.PGRepo{DB: sqlDB}), document)
}

func importInto(ctx context.Context, out io.Writer, svc *jobs.Service, document []byte) error {
	report, err := svc.Import(ctx, document)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
