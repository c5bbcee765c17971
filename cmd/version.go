package cmd

import (
	"fmt"

	"github.com/alexiusacademia/wingbox/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wingbox",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Wing Box Structural Layout Generator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
