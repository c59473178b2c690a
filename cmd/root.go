package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "otl2everytime",
	Short: "Migrate your OTL timetable to Everytime",
	Long: `otl2everytime copies your enrolled courses for the current term from
the KAIST OTL portal into an Everytime timetable by replaying them
through the custom-subject form.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
