package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/pkg/model"
)

func newReportCmd() *cobra.Command {
	var (
		surface      float64
		budget       float64
		entrepriseID int64
		photoURL     string
	)

	cmd := &cobra.Command{
		Use:   "report <latitude> <longitude> <description>",
		Short: "Signaler une dégradation de la chaussée",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := sessions.Load()
			if sess == nil {
				return fmt.Errorf("aucune session. Utilisez `voirie login`")
			}

			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("latitude invalide: %q", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("longitude invalide: %q", args[1])
			}
			description := strings.TrimSpace(args[2])
			if description == "" {
				return fmt.Errorf("la description ne peut pas être vide")
			}

			statusID, err := defaultStatusID(cmd, "NOUVEAU")
			if err != nil {
				return err
			}

			in := model.SignalementInput{
				UserID:       sess.UserID,
				StatusID:     statusID,
				EntrepriseID: entrepriseID,
				Latitude:     lat,
				Longitude:    lon,
				Description:  description,
				PhotoURL:     photoURL,
			}
			if cmd.Flags().Changed("surface") {
				in.SurfaceArea = &surface
			}
			if cmd.Flags().Changed("budget") {
				in.Budget = &budget
			}

			sig, err := backend.CreateSignalement(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("%s", api.ErrorMessage(err))
			}

			fmt.Printf("Signalement #%d créé (%s)\n", sig.ID, sig.Status.Name)
			return nil
		},
	}

	cmd.Flags().Float64Var(&surface, "surface", 0, "Surface dégradée en m²")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget estimé")
	cmd.Flags().Int64Var(&entrepriseID, "entreprise", 0, "Entreprise assignée (id)")
	cmd.Flags().StringVar(&photoURL, "photo-url", "", "URL d'une photo déjà hébergée")
	return cmd
}

// defaultStatusID resolves a progress status name to its backend id.
func defaultStatusID(cmd *cobra.Command, name string) (int64, error) {
	statuses, err := backend.ListStatuses(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("chargement des statuts: %s", api.ErrorMessage(err))
	}
	for _, s := range statuses {
		if strings.EqualFold(s.Name, name) {
			return s.ID, nil
		}
	}
	if len(statuses) > 0 {
		return statuses[0].ID, nil
	}
	return 0, fmt.Errorf("aucun statut disponible côté serveur")
}
