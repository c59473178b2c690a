package cmd

import (
	"context"
	"fmt"
	"strings"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/config"
	"otl2everytime/pkg/everytime"
	"otl2everytime/pkg/logging"
	"otl2everytime/pkg/timeslot"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var previewHeadless bool

// dayNames matches the form's weekday strip order.
var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show what would be migrated, without touching Everytime",
	Long: `Log into OTL only, extract and transform this term's courses, and print
the resulting entries. Nothing is written anywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		if cfg != nil && cfg.Headless {
			previewHeadless = true
		}

		creds, err := resolveCredentials(cfg, false)
		if err != nil {
			return err
		}

		log := logging.New(verbose)
		defer log.Sync()

		ctx := context.Background()
		env := browser.NewEnv(previewHeadless)
		defer env.Close()

		source, term, subjects, err := sourcePhase(ctx, env, creds.KaistID, log)
		if err != nil {
			return err
		}
		defer source.Close()

		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0)
		fmt.Println(titleStyle.Render(fmt.Sprintf("Timetable %d/%d — %d courses", term.Year, term.Semester, len(subjects))))

		for _, sub := range subjects {
			printSubject(sub)
		}
		return nil
	},
}

func printSubject(sub everytime.Subject) {
	profStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	header := sub.Name
	if sub.Professor != "" {
		header += " " + profStyle.Render(sub.Professor)
	}
	fmt.Printf("• %s\n", header)

	if len(sub.TimePlace) == 0 {
		fmt.Printf("  %s\n", warnStyle.Render("no meeting times — will be skipped"))
		return
	}
	for _, tp := range sub.TimePlace {
		sh, sm := timeslot.Clock(tp.StartSlot)
		eh, em := timeslot.Clock(tp.EndSlot)

		day := fmt.Sprintf("day %d", tp.Day)
		if tp.Day >= 0 && tp.Day < len(dayNames) {
			day = dayNames[tp.Day]
		}

		line := fmt.Sprintf("%s %s", day, timeStyle.Render(fmt.Sprintf("%02d:%02d-%02d:%02d", sh, sm, eh, em)))
		if tp.Place != "" {
			line += " @ " + tp.Place
		}
		fmt.Printf("  %s\n", strings.TrimSpace(line))
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewHeadless, "headless", false, "Run the browser without a window")
}
