package cmd

import (
	"context"
	"fmt"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/config"
	"otl2everytime/pkg/everytime"
	"otl2everytime/pkg/migrate"
	"otl2everytime/pkg/otl"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	codeStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

// promptTheme builds the huh theme, honoring a saved accent color.
func promptTheme(cfg *config.AppConfig) *huh.Theme {
	baseColor := "99"
	if cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)
	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)
	return t
}

// resolveCredentials starts from env/.env values and prompts for whatever is
// missing. The saved KAIST ID pre-fills its prompt. withEverytime skips the
// destination pair for source-only commands.
func resolveCredentials(cfg *config.AppConfig, withEverytime bool) (config.Credentials, error) {
	creds := config.CredentialsFromEnv()
	if creds.KaistID == "" && cfg != nil {
		creds.KaistID = cfg.KaistID
	}

	var fields []huh.Field
	if creds.KaistID == "" {
		fields = append(fields, huh.NewInput().
			Title("KAIST ID").
			Description("Your OTL portal login ID.").
			Value(&creds.KaistID))
	}
	if withEverytime && creds.EverytimeID == "" {
		fields = append(fields, huh.NewInput().
			Title("Everytime ID").
			Value(&creds.EverytimeID))
	}
	if withEverytime && creds.EverytimePW == "" {
		fields = append(fields, huh.NewInput().
			Title("Everytime password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.EverytimePW))
	}

	if len(fields) > 0 {
		form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(promptTheme(cfg))
		if err := form.Run(); err != nil {
			return creds, fmt.Errorf("credential prompt aborted: %w", err)
		}
	}

	if creds.KaistID == "" {
		return creds, fmt.Errorf("a KAIST ID is required")
	}
	if withEverytime && (creds.EverytimeID == "" || creds.EverytimePW == "") {
		return creds, fmt.Errorf("Everytime credentials are required")
	}

	// Remember the ID for next time; purely a convenience, ignore failures.
	if cfg != nil && cfg.KaistID != creds.KaistID {
		cfg.KaistID = creds.KaistID
		_ = config.Save(cfg)
	}
	return creds, nil
}

// sourcePhase logs into OTL and collects the current term's subjects. The
// caller owns the returned page.
func sourcePhase(ctx context.Context, env *browser.Env, kaistID string, log *zap.Logger) (*browser.Page, otl.Semester, []everytime.Subject, error) {
	fmt.Println(accentStyle.Render("Logging into OTL..."))

	page, err := otl.Login(ctx, env, kaistID, func(code string) {
		fmt.Println(codeStyle.Render(fmt.Sprintf("OTL verification code: %s", code)))
		fmt.Println("Approve the login on your device to continue.")
	})
	if err != nil {
		return nil, otl.Semester{}, nil, fmt.Errorf("OTL login failed: %w", err)
	}

	runner := migrate.NewRunner(log)
	var (
		sem      otl.Semester
		subjects []everytime.Subject
		collErr  error
	)
	_ = spinner.New().
		Title("Fetching your enrolled courses...").
		Action(func() {
			sem, subjects, collErr = runner.Collect(ctx, otl.NewClient(page))
		}).
		Run()

	if collErr != nil {
		page.Close()
		return nil, otl.Semester{}, nil, fmt.Errorf("failed to extract timetable: %w", collErr)
	}
	return page, sem, subjects, nil
}
