package model

// StatusStatistic aggregates signalements sharing a progress status.
type StatusStatistic struct {
	StatusName   string  `json:"statusName"`
	Count        int     `json:"count"`
	TotalSurface float64 `json:"totalSurface"`
	TotalBudget  float64 `json:"totalBudget"`
	Percentage   float64 `json:"percentage"`
}

// TreatmentStatistic tracks how long a single signalement took to treat.
type TreatmentStatistic struct {
	SignalementID    int64  `json:"signalementId"`
	Description      string `json:"description"`
	DateCreation     string `json:"dateCreation"`
	DateDebutTravaux string `json:"dateDebutTravaux,omitempty"`
	DateFin          string `json:"dateFin,omitempty"`
	TreatmentDays    int    `json:"treatmentDays"`
	CurrentStatus    string `json:"currentStatus"`
}

// Statistics is the global dashboard payload from /statistics/global.
// A zero-valued Statistics is the documented fallback when the fetch
// times out or fails.
type Statistics struct {
	TotalPoints          int                  `json:"totalPoints"`
	TotalSurfaceArea     float64              `json:"totalSurfaceArea"`
	TotalBudget          float64              `json:"totalBudget"`
	ProgressPercent      float64              `json:"progressPercent"`
	CountNouveau         int                  `json:"countNouveau"`
	CountEnCours         int                  `json:"countEnCours"`
	CountTermine         int                  `json:"countTermine"`
	StatusStats          []StatusStatistic    `json:"statusStats"`
	TreatmentStats       []TreatmentStatistic `json:"treatmentStats"`
	AverageTreatmentDays float64              `json:"averageTreatmentDays"`
}

// SyncResult reports the counts returned by the backend after a
// Firestore/relational signalement reconciliation.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
}
