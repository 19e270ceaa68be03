package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email|username>",
		Short: "Se connecter au service",
		Long:  "Authenticate against the backend (and the identity provider in firebase mode) and cache the session locally.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := strings.TrimSpace(args[0])

			if password == "" {
				var err error
				password, err = promptSecret("Mot de passe : ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				return fmt.Errorf("le mot de passe ne peut pas être vide")
			}

			resp := authn.Login(cmd.Context(), identifier, password)
			if !resp.Success {
				if resp.RemainingAttempts != nil {
					fmt.Printf("%s (%d tentative(s) restante(s))\n", resp.Message, *resp.RemainingAttempts)
				} else {
					fmt.Println(resp.Message)
				}
				return fmt.Errorf("connexion refusée")
			}

			fmt.Printf("Connecté en tant que %s (%s)\n", resp.Username, resp.Role())
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Mot de passe (demandé si omis)")
	return cmd
}

// promptSecret reads a line from stdin. Plain read, no terminal echo
// suppression: the CLI also runs in CI pipelines piping stdin.
func promptSecret(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("lecture du mot de passe: %w", err)
	}
	return strings.TrimSpace(line), nil
}
