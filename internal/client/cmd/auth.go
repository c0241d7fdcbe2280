package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type authClient struct {
	serverURL *string
}

func newAuthCmd(serverURL *string) *cobra.Command {
	a := &authClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}
	cmd.AddCommand(&cobra.Command{Use: "register", Short: "Register a new account", RunE: a.register})
	cmd.AddCommand(&cobra.Command{Use: "login", Short: "Login and store tokens", RunE: a.login})
	cmd.AddCommand(&cobra.Command{Use: "logout", Short: "Forget stored tokens", RunE: a.logout})
	cmd.AddCommand(&cobra.Command{Use: "whoami", Short: "Show the logged in user", RunE: a.whoami})
	return cmd
}

func (a *authClient) register(cmd *cobra.Command, args []string) error {
	email := promptLine(cmd, "Email: ")
	username := promptLine(cmd, "Username: ")
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(cmd, "Confirm password: ")
	if err != nil {
		return err
	}
	// Local precondition, never sent to the server.
	if string(password) != string(confirm) {
		return errors.New("Passwords do not match")
	}

	mgr, _ := newSession(cmd.Context(), *a.serverURL)
	if err := mgr.Register(cmd.Context(), email, username, string(password), string(confirm)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", mgr.State().User.Email)
	return nil
}

func (a *authClient) login(cmd *cobra.Command, args []string) error {
	email := promptLine(cmd, "Email: ")
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	mgr, _ := newSession(cmd.Context(), *a.serverURL)
	if err := mgr.Login(cmd.Context(), email, string(password)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", mgr.State().User.Email)
	return nil
}

func (a *authClient) logout(cmd *cobra.Command, args []string) error {
	mgr, _ := newSession(cmd.Context(), *a.serverURL)
	mgr.Logout()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func (a *authClient) whoami(cmd *cobra.Command, args []string) error {
	mgr, _ := newSession(cmd.Context(), *a.serverURL)
	if err := requireAuth(mgr); err != nil {
		return err
	}
	u := mgr.State().User
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Username, u.Email)
	return nil
}

func promptLine(cmd *cobra.Command, prompt string) string {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	return pass, err
}
