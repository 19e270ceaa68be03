package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Afficher les statistiques globales",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := backend.GlobalStatistics(cmd.Context())

			fmt.Printf("Signalements : %d\n", stats.TotalPoints)
			fmt.Printf("Surface      : %.1f m²\n", stats.TotalSurfaceArea)
			fmt.Printf("Budget       : %.2f\n", stats.TotalBudget)
			fmt.Printf("Avancement   : %.1f%%\n", stats.ProgressPercent)
			fmt.Printf("Répartition  : %d nouveau, %d en cours, %d terminé\n",
				stats.CountNouveau, stats.CountEnCours, stats.CountTermine)
			if stats.AverageTreatmentDays > 0 {
				fmt.Printf("Délai moyen  : %.1f jours\n", stats.AverageTreatmentDays)
			}
			for _, st := range stats.StatusStats {
				fmt.Printf("  %-12s %4d (%.1f%%)\n", st.StatusName, st.Count, st.Percentage)
			}
			return nil
		},
	}
}
