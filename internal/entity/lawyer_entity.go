package entity

import "time"

// Lawyer is a read-only directory row.
type Lawyer struct {
	Id          int64
	LawFirm     string
	PhoneNumber string
	Email       string
	Website     string
	City        string
	County      string
	State       string
	CreatedAt   time.Time
}

// LawyerProfile is a directory row plus the display fields derived for a
// match. None of the derived fields are persisted to the directory.
type LawyerProfile struct {
	Lawyer
	Name            string
	Specialty       string
	Rating          float64
	ProfileImageUrl string
	Availability    string
	IsFirmVerified  bool
	Description     string
	PracticeAreas   []string
}
