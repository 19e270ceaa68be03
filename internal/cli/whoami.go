package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/voirie/pkg/model"
)

func newWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Afficher la session en cours",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := sessions.Load()
			if sess == nil {
				fmt.Println("Aucune session. Utilisez `voirie login`.")
				return nil
			}

			fmt.Printf("Utilisateur : %s\n", sess.Username)
			if sess.Email != "" {
				fmt.Printf("Email       : %s\n", sess.Email)
			}
			fmt.Printf("Rôle        : %s\n", sess.Role())
			if sess.TokenExp > 0 {
				exp := time.Unix(sess.TokenExp, 0)
				fmt.Printf("Jeton       : expire le %s\n", exp.Format("02/01/2006 15:04"))
			}
			// Provider sessions carry no backend JWT; their refresh
			// token mints fresh ID tokens on demand.
			if !model.IsTokenValid(sess, time.Now()) && sess.RefreshToken == "" {
				fmt.Println("Le jeton a expiré. Reconnectez-vous avec `voirie login`.")
				return nil
			}

			if remote {
				me, err := backend.Me(cmd.Context())
				if err != nil {
					return fmt.Errorf("vérification auprès du serveur: %w", err)
				}
				fmt.Printf("Serveur     : session valide pour %s\n", me.Username)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Vérifier la session auprès du serveur")
	return cmd
}
