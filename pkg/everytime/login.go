package everytime

import (
	"context"
	"errors"
	"strings"
	"time"

	"otl2everytime/pkg/browser"
)

const (
	accountLoginURL = "https://account.everytime.kr/login"
	siteURL         = "https://everytime.kr/"
	timetableURL    = "https://everytime.kr/timetable"

	idInputSel      = `form input[name="id"]`
	pwInputSel      = `form input[name="password"]`
	loginSubmitSel  = `form input[type="submit"]`
	createSheetSel  = "a.create"
	sheetSettleWait = 600 * time.Millisecond
)

// ErrLoginFailed means the account login did not land back on the site,
// which is all the feedback the login form gives for bad credentials.
var ErrLoginFailed = errors.New("everytime login failed")

// Login signs into Everytime on a fresh page and leaves it on the timetable,
// where the custom-subject form lives.
func Login(ctx context.Context, env *browser.Env, id, password string) (*browser.Page, error) {
	page := env.NewPage()

	if err := page.Navigate(accountLoginURL, 30*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.WaitVisible(idInputSel, 15*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.Type(idInputSel, id, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.Type(pwInputSel, password, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.Click(loginSubmitSel, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}

	// Successful logins bounce back to the main site. The redirect has no
	// other signal, so wait briefly and then check where we ended up.
	browser.Await(ctx, 5*time.Second, 250*time.Millisecond, func(context.Context) (bool, error) {
		loc, err := page.URL()
		return strings.HasPrefix(loc, siteURL), err
	})
	loc, err := page.URL()
	if err != nil || !strings.HasPrefix(loc, siteURL) {
		page.Close()
		return nil, ErrLoginFailed
	}

	if err := page.Navigate(timetableURL, 30*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	page.Sleep(time.Second)
	return page, nil
}

// OpenCreateSheet clicks the "make a new timetable" control if it is there.
// Accounts with an existing table for the term do not show it, so failures
// are ignored.
func OpenCreateSheet(page *browser.Page) {
	if err := page.Click(createSheetSel, 3*time.Second); err == nil {
		page.Sleep(sheetSettleWait)
	}
}
