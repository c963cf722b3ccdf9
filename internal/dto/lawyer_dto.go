package dto

import "time"

type LawyerResponse struct {
	Id              int64     `json:"id"`
	Name            string    `json:"name"`
	LawFirm         string    `json:"law_firm"`
	PhoneNumber     string    `json:"phone_number"`
	Email           string    `json:"email"`
	Website         string    `json:"website"`
	City            string    `json:"city"`
	County          string    `json:"county"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
	Specialty       string    `json:"specialty"`
	Rating          float64   `json:"rating"`
	ProfileImageUrl string    `json:"profile_image_url"`
	Availability    string    `json:"availability"`
	IsFirmVerified  bool      `json:"is_firm_verified"`
	Description     string    `json:"description"`
	PracticeAreas   []string  `json:"practice_areas"`
}

type FindLawyersRequest struct {
	Location string `query:"location" validate:"max=200"`
	CaseType string `query:"case_type" validate:"max=100"`
}

type LawyerMatchResponse struct {
	Location    string           `json:"location"`
	CaseType    string           `json:"case_type,omitempty"`
	Granularity string           `json:"granularity"`
	Lawyers     []LawyerResponse `json:"lawyers"`
}

type ContactLawyerRequest struct {
	LawyerId int64  `json:"-"`
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=40"`
	Message  string `json:"message" validate:"required,max=2000"`
}

type ContactLawyerResponse struct {
	LawyerId int64  `json:"lawyer_id"`
	LawFirm  string `json:"law_firm"`
	Status   string `json:"status"`
}
