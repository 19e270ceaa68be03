package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/pkg/model"
)

func newListCmd() *cobra.Command {
	var (
		mine             bool
		statusFilter     string
		validationStatus string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les signalements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				signalements []model.Signalement
				err          error
			)
			if validationStatus != "" {
				signalements, err = backend.ListSignalementsByValidationStatus(cmd.Context(), validationStatus)
			} else {
				signalements, err = backend.ListSignalements(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("%s", api.ErrorMessage(err))
			}

			if mine {
				sess := sessions.Load()
				if sess == nil {
					return fmt.Errorf("aucune session. Utilisez `voirie login`")
				}
				filtered := signalements[:0]
				for _, s := range signalements {
					if s.User.ID == sess.UserID {
						filtered = append(filtered, s)
					}
				}
				signalements = filtered
			}
			if statusFilter != "" {
				filtered := signalements[:0]
				for _, s := range signalements {
					if strings.EqualFold(s.Status.Name, statusFilter) {
						filtered = append(filtered, s)
					}
				}
				signalements = filtered
			}

			if len(signalements) == 0 {
				fmt.Println("Aucun signalement.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUT\tPOSITION\tDESCRIPTION\tDATE")
			for _, s := range signalements {
				desc := s.Description
				if len(desc) > 50 {
					desc = desc[:50] + "..."
				}
				fmt.Fprintf(w, "%d\t%s\t%.5f,%.5f\t%s\t%s\n",
					s.ID, s.Status.Name, s.Latitude, s.Longitude, desc, s.DateSignalement)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Uniquement mes signalements")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filtrer par statut d'avancement")
	cmd.Flags().StringVar(&validationStatus, "validation", "", "Filtrer par statut de validation")
	return cmd
}
