package model

// MinimalUser is the user reference embedded in a signalement.
type MinimalUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Status is a signalement progress status (new / in progress / done).
type Status struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ValidationStatus is a manager-controlled workflow state
// (pending / approved / rejected), distinct from the progress Status.
type ValidationStatus struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validation records the manager decision attached to a signalement.
type Validation struct {
	ID          int64            `json:"id"`
	Status      ValidationStatus `json:"status"`
	ValidatedAt string           `json:"validatedAt,omitempty"`
	Note        string           `json:"note,omitempty"`
}

// Signalement is a citizen-submitted report of a road defect.
type Signalement struct {
	ID          int64       `json:"id"`
	User        MinimalUser `json:"user"`
	Status      Status      `json:"status"`
	Entreprise  *Entreprise `json:"entreprise,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Description string      `json:"description"`
	DateSignalement string  `json:"dateSignalement,omitempty"`
	SurfaceArea *float64    `json:"surfaceArea,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	PhotoURL    string      `json:"photoUrl,omitempty"`
}

// SignalementInput is the payload for creating or updating a
// signalement. Referenced entities are sent as {id} objects, matching
// what the backend's relational layer expects.
type SignalementInput struct {
	UserID       int64
	StatusID     int64
	EntrepriseID int64 // 0 means no entreprise assigned
	Latitude     float64
	Longitude    float64
	Description  string
	SurfaceArea  *float64
	Budget       *float64
	PhotoURL     string
}
