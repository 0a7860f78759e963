package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	loginUser string
	loginPass string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate as the admin account and save the token",
	Example: `  camctl login --host http://localhost:3000 -u admin -p secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(false)
		if err != nil {
			return err
		}

		host := viper.GetString("base_url")
		fmt.Printf("Authenticating against %s as user '%s'...\n", host, loginUser)

		res, err := api.Login(cmd.Context(), loginUser, loginPass)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveSession(host, res.Token); err != nil {
			return fmt.Errorf("failed to save configuration file: %w", err)
		}
		fmt.Printf("Logged in as %s (%s). Token saved.\n", res.User.Username, res.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := saveSession(viper.GetString("base_url"), ""); err != nil {
			return err
		}
		fmt.Println("Token removed.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check the saved token against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient(true)
		if err != nil {
			return err
		}
		res, err := api.Verify(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", res.User.Username, res.User.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "admin", "Admin username")
	loginCmd.Flags().StringVarP(&loginPass, "password", "p", "", "Admin password")
	_ = loginCmd.MarkFlagRequired("password")
}
