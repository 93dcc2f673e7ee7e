// Package cli implements the mediavault command-line interface. It is the
// stand-in for the original interactive frontend: every command resolves the
// current session, checks permissions through the authorization service, and
// only then touches the repositories.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
)

// rootCmd is the base command for mediavault.
var rootCmd = &cobra.Command{
	Use:   "mediavault",
	Short: "Local media asset manager",
	Long: `Mediavault organizes images, SVGs, videos and Lottie animations into a
local library with albums and a simple role-based permission model.

All state lives in a local key-value store; there is no server and no
network access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Use alternate config file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(storageCmd)
	rootCmd.AddCommand(albumCmd)
	rootCmd.AddCommand(watchCmd)
}
