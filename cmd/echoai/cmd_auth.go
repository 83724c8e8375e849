package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"echoai/internal/api"
	"echoai/internal/session"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the ECHO AI backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := loginUsername
		password := loginPassword

		var err error
		if username == "" {
			if username, err = promptLine("Username: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptLine("Password: "); err != nil {
				return err
			}
		}

		err = appCtx.sessions.Login(cmd.Context(), username, password)
		appCtx.flushNotices()
		return err
	},
}

var (
	registerUsername string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := registerUsername
		email := registerEmail
		password := registerPassword

		var err error
		if username == "" {
			if username, err = promptLine("Username: "); err != nil {
				return err
			}
		}
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptLine("Password: "); err != nil {
				return err
			}
		}

		err = appCtx.sessions.Register(cmd.Context(), api.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		appCtx.flushNotices()
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx.sessions.Logout()
		appCtx.flushNotices()
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appCtx.sessions.Startup(cmd.Context()); err != nil {
			return err
		}
		if appCtx.sessions.Status() != session.Authenticated {
			fmt.Println("Not logged in.")
			return nil
		}

		user := appCtx.sessions.User()
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password")
}
