package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/voirie/internal/auth"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Se déconnecter et effacer la session locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth.Logout(sessions, state)
			fmt.Println("Session effacée.")
			return nil
		},
	}
}
