package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mediavault/internal/auth"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		state, err := engine.Auth.Login(args[0], loginPassword)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				// One generic message; never reveal which field was wrong.
				return fmt.Errorf("invalid username or password")
			}
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", state.User.Username, state.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		engine.Auth.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session and its permissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		state := engine.Auth.CurrentSession()
		if !state.IsAuthenticated {
			fmt.Println("Not logged in")
			return nil
		}

		fmt.Printf("Logged in as %s (%s)\n", state.User.Username, state.User.Role)
		for _, p := range auth.PermissionsOf(state.User) {
			fmt.Printf("  - %s\n", p)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("password")
}
