package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/wingbox/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wingbox",
	Short: "Wing box topology generator",
	Long: `wingbox - Wing Box Structural Layout Generator

A CLI tool that lays out the internal structure of a transport aircraft
wing from its outer mould line and emits the topology a mesher needs.

This tool generates:
  - Rib stations normal to the elastic axis outboard of the Yehudi break
  - Spars, spar caps and stringers crossing every rib
  - Ribs, skins, spar webs, caps, stringer profiles and rib flanges
  - Named components and assemblies with per rib mesh sizes

The default configuration is the uCRM-9 research wing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   wingbox v%-47s║\n", version.Version)
		fmt.Println("  ║   Wing Box Structural Layout Generator                    ║")
		fmt.Printf("  ║   %-56s║\n", fmt.Sprintf("%s © %s", version.Author, version.Year))
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Lays out ribs, spars and stringers inside a wing and emits")
		fmt.Println("  nodes, curves, surfaces, components and assemblies.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • generate   emit the wing box topology")
		fmt.Println("    • stations   print rib stations and feature crossings")
		fmt.Println("    • verify     compare a node table against a fresh run")
		fmt.Println()
		fmt.Println("  Use 'wingbox --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
