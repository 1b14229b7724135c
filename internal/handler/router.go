package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/middleware"
	"github.com/campusware/university-api/internal/service"
)

// Handlers bundles every HTTP handler the gateway serves.
type Handlers struct {
	Auth        *AuthHandler
	Faculties   *FacultyHandler
	Departments *DepartmentHandler
	Majors      *MajorHandler
	Instructors *InstructorHandler
	Courses     *CourseHandler
	Students    *StudentHandler
	Enrollments *EnrollmentHandler
	Exports     *TranscriptExportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes wires every endpoint under the API prefix. Sign-up, sign-in
// and the metrics endpoint are public; everything else requires a token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/signup", h.Auth.SignUp)
	api.POST("/auth/signin", h.Auth.SignIn)
	api.GET("/metrics", h.Metrics.Prometheus)

	secured := api.Group("")
	secured.Use(middleware.JWT(auth))

	secured.GET("/faculties", h.Faculties.List)
	secured.POST("/faculties", h.Faculties.Create)

	secured.GET("/departments", h.Departments.List)
	secured.POST("/departments", h.Departments.Create)
	secured.DELETE("/departments/:id", h.Departments.Delete)

	secured.GET("/majors", h.Majors.List)
	secured.POST("/majors", h.Majors.Create)

	secured.GET("/instructors", h.Instructors.List)
	secured.POST("/instructors", h.Instructors.Create)
	secured.GET("/instructors/salary-stats", h.Instructors.SalaryStats)

	secured.GET("/courses", h.Courses.List)
	secured.POST("/courses", h.Courses.Create)
	secured.PUT("/courses/:id", h.Courses.Update)

	secured.GET("/students", h.Students.List)
	secured.POST("/students", h.Students.Create)
	secured.GET("/students/max-file-number", h.Students.MaxFileNumber)
	secured.GET("/students/file/:fileNumber", h.Students.GetByFileNumber)
	secured.GET("/students/:id", h.Students.Get)
	secured.DELETE("/students/:id", h.Students.Delete)

	secured.POST("/enrollments", h.Enrollments.Enroll)
	secured.PUT("/enrollments/grade", h.Enrollments.SetGrade)
	secured.GET("/students/:id/enrollments", h.Enrollments.ListByStudent)
	secured.GET("/students/:id/transcript", h.Enrollments.Transcript)
	secured.POST("/students/:id/transcript/export", h.Exports.Generate)

	// download links are authorized by their signature, not by a session
	api.GET("/transcripts/export/:token", h.Exports.Download)
}
