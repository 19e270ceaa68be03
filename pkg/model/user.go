package model

// TypeUser is a user role/type reference row.
type TypeUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a backend user record as returned by /users.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Type          *TypeUser `json:"type,omitempty"`
	Blocked       bool      `json:"blocked,omitempty"`
	LoginAttempts int       `json:"loginAttempts,omitempty"`
	FirebaseUID   string    `json:"firebaseUid,omitempty"`
}

// Entreprise is a road-works contractor.
type Entreprise struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}
