package cmd

import (
	"context"
	"fmt"
	"os"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/config"
	"otl2everytime/pkg/exporter"
	"otl2everytime/pkg/logging"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export this term's OTL timetable to an ICS file",
	Long: `Log into OTL, extract and transform this term's courses, and write them
as weekly-recurring calendar events instead of replaying them into Everytime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		headless, _ := cmd.Flags().GetBool("headless")

		cfg, _ := config.Load()
		if cfg != nil && cfg.Headless {
			headless = true
		}

		creds, err := resolveCredentials(cfg, false)
		if err != nil {
			return err
		}

		log := logging.New(verbose)
		defer log.Sync()

		ctx := context.Background()
		env := browser.NewEnv(headless)
		defer env.Close()

		source, term, subjects, err := sourcePhase(ctx, env, creds.KaistID, log)
		if err != nil {
			return err
		}
		defer source.Close()

		if len(subjects) == 0 {
			return fmt.Errorf("no courses found for %d/%d", term.Year, term.Semester)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.WriteICS(subjects, term, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d courses to %s\n", len(subjects), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "timetable.ics", "Output file path")
	exportCmd.Flags().Bool("headless", false, "Run the browser without a window")
}
