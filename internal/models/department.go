package models

import "time"

// Department belongs to a faculty and owns majors.
type Department struct {
	ID             string    `db:"id" json:"id"`
	DepartmentName string    `db:"department_name" json:"departmentName"`
	FacultyID      string    `db:"faculty_id" json:"facultyId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// DepartmentFilter scopes department listings.
type DepartmentFilter struct {
	FacultyID string
	Search    string
	Sort      string
}

// CascadeResult reports how many rows each step of a department cascade
// removed.
type CascadeResult struct {
	Departments int `json:"departments"`
	Majors      int `json:"majors"`
	Courses     int `json:"courses"`
	Instructors int `json:"instructors"`
}
