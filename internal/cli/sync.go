package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Réconcilier les signalements Firestore avec la base relationnelle",
		Long:  "Triggers the server-side reconciliation of Firestore-recorded signalements. Requires VOIRIE_ADMIN_API_KEY.",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := backend.SyncFirebaseSignalements(cmd.Context())
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			fmt.Printf("Synchronisation terminée : %d créés, %d mis à jour, %d ignorés, %d erreurs\n",
				result.Created, result.Updated, result.Skipped, result.Errors)
			return nil
		},
	}
}
