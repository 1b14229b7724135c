package models

import "time"

// Faculty is the top of the academic tree below its owning administrator.
type Faculty struct {
	ID          string    `db:"id" json:"id"`
	FacultyName string    `db:"faculty_name" json:"facultyName"`
	AdminID     string    `db:"admin_id" json:"adminId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// FacultyFilter scopes faculty listings.
type FacultyFilter struct {
	AdminID string
	Search  string
	Sort    string
}
