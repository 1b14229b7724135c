package models

import "time"

// GradeLevel is the academic year a course is taught in. Levels are ordered;
// comparisons use Rank, never string order.
type GradeLevel string

const (
	GradeLevelFirstYear  GradeLevel = "First Year"
	GradeLevelSecondYear GradeLevel = "Second Year"
	GradeLevelThirdYear  GradeLevel = "Third Year"
	GradeLevelM1         GradeLevel = "M1"
	GradeLevelM2         GradeLevel = "M2"
)

// Rank returns the ordinal position of the level, 0 for unknown values.
func (g GradeLevel) Rank() int {
	switch g {
	case GradeLevelFirstYear:
		return 1
	case GradeLevelSecondYear:
		return 2
	case GradeLevelThirdYear:
		return 3
	case GradeLevelM1:
		return 4
	case GradeLevelM2:
		return 5
	default:
		return 0
	}
}

// Valid reports whether the value is a member of the enum.
func (g GradeLevel) Valid() bool {
	return g.Rank() > 0
}

// GradeLevels lists every valid level in ascending order.
func GradeLevels() []GradeLevel {
	return []GradeLevel{GradeLevelFirstYear, GradeLevelSecondYear, GradeLevelThirdYear, GradeLevelM1, GradeLevelM2}
}

// CourseType classifies a course as part of the mandatory curriculum or not.
type CourseType string

const (
	CourseTypeMandatory CourseType = "Mandatory"
	CourseTypeOptional  CourseType = "Optional"
)

// Valid reports whether the value is a member of the enum.
func (t CourseType) Valid() bool {
	return t == CourseTypeMandatory || t == CourseTypeOptional
}

// Course is taught by one instructor within one major.
type Course struct {
	ID             string     `db:"id" json:"id"`
	CourseName     string     `db:"course_name" json:"courseName"`
	Credits        int        `db:"credits" json:"credits"`
	Description    string     `db:"description" json:"description"`
	GradeLevel     GradeLevel `db:"grade_level" json:"gradeLevel"`
	SemesterNumber int        `db:"semester_number" json:"semesterNumber"`
	CourseType     CourseType `db:"course_type" json:"courseType"`
	MajorID        string     `db:"major_id" json:"majorId"`
	InstructorID   string     `db:"instructor_id" json:"instructorId"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// CourseFilterKind names the predicate applied on top of the major scope.
type CourseFilterKind string

const (
	// CourseFilterAll is the default listing of every course in the major.
	CourseFilterAll CourseFilterKind = "instructor"
	// CourseFilterRanked matches courses above first year or worth 3-6 credits.
	CourseFilterRanked CourseFilterKind = "filtered"
	// CourseFilterSecondYear matches second-year courses past semester 2.
	CourseFilterSecondYear CourseFilterKind = "secondYear"
	// CourseFilterMandatoryCreditsSemester matches mandatory courses with
	// credits = 3 or semester = 4.
	CourseFilterMandatoryCreditsSemester CourseFilterKind = "mandatoryCreditsSemester"
	// CourseFilterOptionalThirdYear matches optional third-year courses.
	CourseFilterOptionalThirdYear CourseFilterKind = "optionalThirdYear"
)

// ParseCourseFilterKind maps caller input onto a known predicate. Empty input
// selects the default listing.
func ParseCourseFilterKind(raw string) (CourseFilterKind, bool) {
	switch CourseFilterKind(raw) {
	case CourseFilterAll, CourseFilterRanked, CourseFilterSecondYear,
		CourseFilterMandatoryCreditsSemester, CourseFilterOptionalThirdYear:
		return CourseFilterKind(raw), true
	}
	if raw == "" {
		return CourseFilterAll, true
	}
	return "", false
}

// CourseFilter scopes course listings to a major plus a named predicate.
type CourseFilter struct {
	MajorID string
	Kind    CourseFilterKind
}
