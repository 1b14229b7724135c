package models

import "time"

// PassThreshold is the minimum grade that earns credits.
const PassThreshold = 50.0

// Academic standing bands derived from a single course grade, independent of
// GPA.
const (
	StandingExcellent    = "Excellent"
	StandingSatisfactory = "Satisfactory"
	StandingPass         = "Pass"
	StandingFair         = "Fair"
	StandingFail         = "Fail"
)

// StandingFor returns the standing band for a grade.
func StandingFor(grade float64) string {
	switch {
	case grade >= 90:
		return StandingExcellent
	case grade >= 75:
		return StandingSatisfactory
	case grade >= 60:
		return StandingPass
	case grade >= PassThreshold:
		return StandingFair
	default:
		return StandingFail
	}
}

// Enrollment links a student to a course. Credits and grade level are copied
// from the course at enrollment time so transcripts stay stable when a course
// is later edited. Grade is nil until the course is graded.
type Enrollment struct {
	ID         string     `db:"id" json:"id"`
	StudentID  string     `db:"student_id" json:"studentId"`
	CourseID   string     `db:"course_id" json:"courseId"`
	Grade      *float64   `db:"grade" json:"grade"`
	Credits    int        `db:"credits" json:"credits"`
	GradeLevel GradeLevel `db:"grade_level" json:"gradeLevel"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// EnrollmentDetail joins the course name for listings and transcripts.
type EnrollmentDetail struct {
	Enrollment
	CourseName string `db:"course_name" json:"courseName"`
}

// TranscriptEntry is one graded (or ungraded) row of a transcript.
type TranscriptEntry struct {
	CourseID      string     `json:"courseId"`
	CourseName    string     `json:"courseName"`
	Grade         *float64   `json:"grade"`
	Credits       int        `json:"credits"`
	CreditsEarned int        `json:"creditsEarned"`
	GradeLevel    GradeLevel `json:"gradeLevel"`
	Passed        bool       `json:"passed"`
	Standing      string     `json:"standing,omitempty"`
}

// Transcript is the computed per-student report for one grade level.
type Transcript struct {
	StudentID          string            `json:"studentId"`
	GradeLevel         GradeLevel        `json:"gradeLevel"`
	Entries            []TranscriptEntry `json:"entries"`
	TotalCreditsEarned int               `json:"totalCreditsEarned"`
	GPA                float64           `json:"gpa"`
}
