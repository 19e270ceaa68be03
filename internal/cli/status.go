package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/voirie/internal/api"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <signalement_id>",
		Short: "Afficher le détail d'un signalement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("identifiant invalide: %q", args[0])
			}

			signalements, err := backend.ListSignalements(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", api.ErrorMessage(err))
			}

			for _, s := range signalements {
				if s.ID != id {
					continue
				}
				fmt.Printf("Signalement #%d\n", s.ID)
				fmt.Printf("  Statut      : %s\n", s.Status.Name)
				fmt.Printf("  Position    : %.5f, %.5f\n", s.Latitude, s.Longitude)
				fmt.Printf("  Description : %s\n", s.Description)
				if s.DateSignalement != "" {
					fmt.Printf("  Date        : %s\n", s.DateSignalement)
				}
				if s.SurfaceArea != nil {
					fmt.Printf("  Surface     : %.1f m²\n", *s.SurfaceArea)
				}
				if s.Budget != nil {
					fmt.Printf("  Budget      : %.2f\n", *s.Budget)
				}
				if s.Entreprise != nil {
					fmt.Printf("  Entreprise  : %s\n", s.Entreprise.Name)
				}
				if s.Validation != nil {
					fmt.Printf("  Validation  : %s", s.Validation.Status.Name)
					if s.Validation.Note != "" {
						fmt.Printf(" (%s)", s.Validation.Note)
					}
					fmt.Println()
				}
				return nil
			}

			return fmt.Errorf("signalement %d introuvable", id)
		},
	}
}
