package models

import "time"

// Instructor teaches courses within a major. Image and CV are opaque binary
// blobs stored and returned unmodified; JSON encoding renders them base64.
type Instructor struct {
	ID        string    `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	HireDate  time.Time `db:"hire_date" json:"hireDate"`
	DOB       time.Time `db:"dob" json:"dob"`
	Salary    float64   `db:"salary" json:"salary"`
	Image     []byte    `db:"image" json:"image,omitempty"`
	CV        []byte    `db:"cv" json:"cv,omitempty"`
	MajorID   string    `db:"major_id" json:"majorId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// InstructorFilter scopes instructor listings.
type InstructorFilter struct {
	MajorID string
	Search  string
}

// MajorSalaryStat aggregates instructor salaries per major.
type MajorSalaryStat struct {
	MajorName       string  `db:"major_name" json:"majorName"`
	AverageSalary   float64 `db:"average_salary" json:"averageSalary"`
	InstructorCount int     `db:"instructor_count" json:"instructorCount"`
}

// SalarySummary is the institution-wide salary aggregate.
type SalarySummary struct {
	AverageSalary   float64 `db:"average_salary" json:"averageSalary"`
	InstructorCount int     `db:"instructor_count" json:"instructorCount"`
}
