package models

import "time"

// Major belongs to a department; instructors, courses and students hang off it.
type Major struct {
	ID           string    `db:"id" json:"id"`
	MajorName    string    `db:"major_name" json:"majorName"`
	Description  string    `db:"description" json:"description"`
	DepartmentID string    `db:"department_id" json:"departmentId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// MajorFilter scopes major listings.
type MajorFilter struct {
	DepartmentID string
	Search       string
	Sort         string
}
