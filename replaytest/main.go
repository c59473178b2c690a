// Manual harness for the Everytime form selectors: logs in with env
// credentials and replays one canned subject. Run it after the site ships a
// markup change to see which control broke.
package main

import (
	"context"
	"fmt"
	"os"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/config"
	"otl2everytime/pkg/everytime"
)

func main() {
	creds := config.CredentialsFromEnv()
	if creds.EverytimeID == "" || creds.EverytimePW == "" {
		fmt.Printf("set %s and %s first\n", config.EnvEverytimeID, config.EnvEverytimePW)
		os.Exit(1)
	}

	ctx := context.Background()
	env := browser.NewEnv(false)
	defer env.Close()

	fmt.Println("Logging into Everytime...")
	page, err := everytime.Login(ctx, env, creds.EverytimeID, creds.EverytimePW)
	if err != nil {
		fmt.Println("login failed:", err)
		os.Exit(1)
	}
	defer page.Close()
	everytime.OpenCreateSheet(page)

	// Two slots so the add-slot wait path gets exercised too.
	sub := everytime.Subject{
		Name:      "셀렉터 점검",
		Professor: "테스트",
		TimePlace: []everytime.TimePlace{
			{Day: 0, StartSlot: 108, EndSlot: 120, Place: "N1 102호)"},
			{Day: 3, StartSlot: 156, EndSlot: 168},
		},
	}

	rep := everytime.NewReplicator(everytime.NewForm(page))
	if err := rep.Add(ctx, sub); err != nil {
		fmt.Println("replay failed:", err)
		os.Exit(1)
	}
	fmt.Println("replay succeeded — delete the test subject from your table")
}
