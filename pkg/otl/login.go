package otl

import (
	"context"
	"errors"
	"strings"
	"time"

	"otl2everytime/pkg/browser"

	"github.com/PuerkitoBio/goquery"
)

const (
	loginURL = "https://otl.kaist.ac.kr/session/login/?next=https://otl.kaist.ac.kr/"
	homeURL  = "https://otl.kaist.ac.kr/"

	ssoButtonSel    = "#login-social-kaist-v2"
	idFieldSel      = "#login_id_mfa"
	loginButtonSel  = "a.btn_login"
	mfaCodeSel      = ".nember_wrap"
	deviceButtonSel = `a[href="javascript:setDevice();"], a.btn_basic.btn_easy.mt20`
)

// ErrLoginFailed means the SSO flow did not reach the MFA step, typically a
// rejected or unknown ID.
var ErrLoginFailed = errors.New("otl login failed")

// mfaApprovalWait bounds how long the operator gets to approve the MFA
// prompt on their device.
const mfaApprovalWait = 15 * time.Minute

// Login drives the OTL SSO flow on a fresh page: ID entry, MFA code display
// and device approval. onCode is called with the confirmation code the
// operator must match on their device. The returned page carries the
// authenticated session.
func Login(ctx context.Context, env *browser.Env, kaistID string, onCode func(code string)) (*browser.Page, error) {
	page := env.NewPage()

	if err := page.Navigate(loginURL, 30*time.Second); err != nil {
		page.Close()
		return nil, err
	}

	// The SSO button is absent when a previous session is still alive.
	if found, _ := page.Exists(ssoButtonSel); found {
		_ = page.Click(ssoButtonSel, 5*time.Second)
		// Navigation to the SSO host; soft wait, the ID field check below
		// is the real gate.
		page.Sleep(2 * time.Second)
	}

	if err := page.WaitVisible(idFieldSel, 30*time.Second); err != nil {
		page.Close()
		return nil, ErrLoginFailed
	}
	if err := page.Type(idFieldSel, kaistID, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}
	if err := page.Click(loginButtonSel, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}

	if err := page.WaitVisible(mfaCodeSel, 5*time.Second); err != nil {
		page.Close()
		return nil, ErrLoginFailed
	}

	code, err := readMFACode(page)
	if err != nil {
		page.Close()
		return nil, err
	}
	if onCode != nil {
		onCode(code)
	}

	// The device button only becomes clickable after the operator approves
	// the prompt on their phone.
	if err := page.WaitVisible(deviceButtonSel, mfaApprovalWait); err != nil {
		page.Close()
		return nil, ErrLoginFailed
	}
	if err := page.Click(deviceButtonSel, 10*time.Second); err != nil {
		page.Close()
		return nil, err
	}

	// Redirect back to the portal home. Proceed either way: the first
	// authenticated fetch will surface a broken session immediately.
	browser.Await(ctx, 2*time.Minute, 500*time.Millisecond, func(context.Context) (bool, error) {
		loc, err := page.URL()
		return loc == homeURL, err
	})

	return page, nil
}

// readMFACode joins the digit spans the SSO page displays into the
// confirmation code.
func readMFACode(page *browser.Page) (string, error) {
	html, err := page.HTML(10 * time.Second)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var digits []string
	doc.Find(mfaCodeSel + " span").Each(func(i int, sel *goquery.Selection) {
		digits = append(digits, strings.TrimSpace(sel.Text()))
	})
	return strings.Join(digits, ""), nil
}
