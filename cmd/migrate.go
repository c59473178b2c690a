package cmd

import (
	"context"
	"fmt"
	"time"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/config"
	"otl2everytime/pkg/everytime"
	"otl2everytime/pkg/logging"
	"otl2everytime/pkg/migrate"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	migrateHeadless bool
	settleMillis    int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy this term's OTL timetable into Everytime",
	Long: `Log into both sites, read your enrolled courses for the current term
from OTL, and re-create each one through Everytime's custom-subject form.
Courses that fail individually are skipped; the run keeps going.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		if cfg != nil && cfg.Headless {
			migrateHeadless = true
		}

		creds, err := resolveCredentials(cfg, true)
		if err != nil {
			return err
		}

		log := logging.New(verbose)
		defer log.Sync()

		ctx := context.Background()
		env := browser.NewEnv(migrateHeadless)
		defer env.Close()

		source, term, subjects, err := sourcePhase(ctx, env, creds.KaistID, log)
		if err != nil {
			return err
		}
		defer source.Close()

		fmt.Printf("Found %s for %d/%d.\n",
			accentStyle.Render(fmt.Sprintf("%d courses", len(subjects))),
			term.Year, term.Semester)
		if len(subjects) == 0 {
			fmt.Println("Nothing to migrate.")
			return nil
		}

		fmt.Println(accentStyle.Render("Logging into Everytime..."))
		dest, err := everytime.Login(ctx, env, creds.EverytimeID, creds.EverytimePW)
		if err != nil {
			return fmt.Errorf("Everytime login failed: %w", err)
		}
		defer dest.Close()
		everytime.OpenCreateSheet(dest)

		mctx := migrate.Context{Source: source, Dest: dest}
		replicator := everytime.NewReplicator(everytime.NewForm(mctx.Dest))
		if settleMillis > 0 {
			replicator.Settle = time.Duration(settleMillis) * time.Millisecond
		}

		runner := migrate.NewRunner(log)
		results := runner.Replay(ctx, subjects, replicator.Add)

		printSummary(results)
		return nil
	},
}

func printSummary(results []migrate.Result) {
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	added, skipped, failed := 0, 0, 0
	fmt.Println()
	for _, r := range results {
		switch r.Status {
		case migrate.Added:
			added++
			fmt.Printf("%s %s\n", okStyle.Render("✓"), r.Name)
		case migrate.Skipped:
			skipped++
			fmt.Printf("%s %s %s\n", skipStyle.Render("•"), r.Name, skipStyle.Render("(no meeting times)"))
		default:
			failed++
			fmt.Printf("%s %s %s\n", errorStyle.Render("✗"), r.Name, skipStyle.Render(fmt.Sprintf("(%v)", r.Err)))
		}
	}

	fmt.Printf("\nDone: %s, %s, %s\n",
		okStyle.Render(fmt.Sprintf("%d added", added)),
		skipStyle.Render(fmt.Sprintf("%d skipped", skipped)),
		errorStyle.Render(fmt.Sprintf("%d failed", failed)))
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&migrateHeadless, "headless", false, "Run the browser without a window")
	migrateCmd.Flags().IntVar(&settleMillis, "settle", 0, "Milliseconds to wait after each form submit (default 600)")
}
