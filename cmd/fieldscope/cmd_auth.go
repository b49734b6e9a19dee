package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldscope/internal/api"
	"fieldscope/internal/session"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

// loginCmd obtains a bearer token and persists it for later commands
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the crop-monitoring service",
	Long: `Authenticate with the service and store the issued token in
~/.fieldscope/session.json. Later commands send it automatically.

Example:
  fieldscope login --email farmer@example.com`,
	RunE: runLogin,
}

// registerCmd creates a new account
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Register a new account with the service. Registration does not log
you in; run 'fieldscope login' afterwards.`,
	RunE: runRegister,
}

// logoutCmd discards the stored session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE:  runLogout,
}

// whoamiCmd shows the authenticated user's profile
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted if omitted)")

	registerCmd.Flags().StringVar(&authName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted if omitted)")
}

// promptLine reads one line from stdin after printing a prompt. Used for any
// credential not supplied via flags.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func resolveCredentials(needName bool) (name, email, password string, err error) {
	name = authName
	email = authEmail
	password = authPassword

	if needName && name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return
		}
	}
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return
		}
	}
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return
		}
	}

	if email == "" || password == "" {
		err = fmt.Errorf("email and password are required")
	}
	return
}

func runLogin(cmd *cobra.Command, args []string) error {
	_, email, password, err := resolveCredentials(false)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	tok, err := a.client.Login(context.Background(), api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := a.store.Save(session.Session{AccessToken: tok.AccessToken, Email: email}); err != nil {
		return fmt.Errorf("token issued but could not be stored: %w", err)
	}

	logger.Info("logged in", zap.String("email", email))
	fmt.Printf("Logged in as %s\n", email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, email, password, err := resolveCredentials(true)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := a.client.Register(context.Background(), api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created for %s — run 'fieldscope login' to continue\n", user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	user, err := a.client.Profile(context.Background())
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("not logged in — run 'fieldscope login'")
		}
		return fmt.Errorf("profile fetch failed: %w", err)
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
