package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Créer un compte",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			email := strings.TrimSpace(args[1])

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

			resp := authn.Register(cmd.Context(), username, email, password)
			if !resp.Success {
				fmt.Println(resp.Message)
				return fmt.Errorf("inscription refusée")
			}

			fmt.Printf("Compte créé : %s <%s>\n", resp.Username, resp.Email)
			if resp.Token != "" {
				fmt.Println("Session ouverte.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Mot de passe (demandé si omis)")
	return cmd
}
