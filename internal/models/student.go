package models

import "time"

// Student statuses.
const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
)

// FirstFileNumber is the first file number ever assigned. MaxFileNumber
// returns FirstFileNumber-1 on an empty roster so max+1 always derives the
// next suggestion.
const FirstFileNumber = 30000

// Student is registered under a major and identified by a unique file number.
type Student struct {
	ID               string    `db:"id" json:"id"`
	FileNumber       int       `db:"file_number" json:"fileNumber"`
	FirstName        string    `db:"first_name" json:"firstName"`
	LastName         string    `db:"last_name" json:"lastName"`
	DOB              time.Time `db:"dob" json:"dob"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	Address          string    `db:"address" json:"address"`
	RegistrationDate time.Time `db:"registration_date" json:"registrationDate"`
	Status           string    `db:"status" json:"status"`
	Year             string    `db:"year" json:"year"`
	MajorID          string    `db:"major_id" json:"majorId"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentFilter scopes student listings. Search matches the file number
// rendered as text.
type StudentFilter struct {
	MajorID string
	Search  string
}
