package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Records API",
        "description": "Academic records service for administrators, faculties, departments, majors, instructors, courses, students, enrollments and transcripts",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Administrator sign-up and sign-in"},
        {"name": "Faculties", "description": "Faculties of an administrator"},
        {"name": "Departments", "description": "Departments of a faculty"},
        {"name": "Majors", "description": "Majors of a department"},
        {"name": "Instructors", "description": "Instructor roster and salary statistics"},
        {"name": "Courses", "description": "Course catalog and filtered views"},
        {"name": "Students", "description": "Student roster and file numbers"},
        {"name": "Enrollments", "description": "Enrollments, grading and transcripts"},
        {"name": "Transcripts", "description": "Transcript exports and signed downloads"}
    ],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/faculties": {
            "get": {
                "tags": ["Faculties"],
                "summary": "List faculties of an administrator",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "adminId", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Faculties"],
                "summary": "Create faculty",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown administrator reference"}
                }
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List departments of a faculty",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "facultyId", "in": "query", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Departments"],
                "summary": "Create department",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDepartmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/departments/{id}": {
            "delete": {
                "tags": ["Departments"],
                "summary": "Delete department with cascade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted row counts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Department not found"}
                }
            }
        },
        "/majors": {
            "get": {
                "tags": ["Majors"],
                "summary": "List majors of a department",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Majors"],
                "summary": "Create major",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMajorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instructors": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List instructors of a major",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "majorId", "in": "query", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Instructors"],
                "summary": "Create instructor with image and CV uploads",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "firstName", "in": "formData", "required": true, "type": "string"},
                    {"name": "lastName", "in": "formData", "required": true, "type": "string"},
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "phone", "in": "formData", "required": true, "type": "string"},
                    {"name": "salary", "in": "formData", "required": true, "type": "number"},
                    {"name": "hireDate", "in": "formData", "required": true, "type": "string"},
                    {"name": "dob", "in": "formData", "required": true, "type": "string"},
                    {"name": "majorId", "in": "formData", "required": true, "type": "string"},
                    {"name": "image", "in": "formData", "required": true, "type": "file"},
                    {"name": "cv", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or non-PDF CV"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/instructors/salary-stats": {
            "get": {
                "tags": ["Instructors"],
                "summary": "Salary statistics, global or per major",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "majorId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses of a major with an optional named filter",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "majorId", "in": "query", "required": true, "type": "string"},
                    {"name": "filter", "in": "query", "type": "string", "enum": ["instructor", "filtered", "secondYear", "mandatoryCreditsSemester", "optionalThirdYear"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown filter name"}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students of a major",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "majorId", "in": "query", "required": true, "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "File number already assigned"}
                }
            }
        },
        "/students/max-file-number": {
            "get": {
                "tags": ["Students"],
                "summary": "Highest assigned file number",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/file/{fileNumber}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student by file number",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileNumber", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll student into a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown student or course reference"}
                }
            }
        },
        "/enrollments/grade": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Record a grade on an enrollment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Grade outside 0..100"},
                    "404": {"description": "Enrollment not found"}
                }
            }
        },
        "/students/{id}/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a student's enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/transcript": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Transcript with per-course standings and GPA",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "gradeLevel", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/transcript/export": {
            "post": {
                "tags": ["Transcripts"],
                "summary": "Render transcript to PDF or CSV and mint a download link",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "gradeLevel", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transcripts/export/{token}": {
            "get": {
                "tags": ["Transcripts"],
                "summary": "Download a rendered transcript via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "SignUpRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["firstName", "lastName", "email", "password"]
        },
        "SignInRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateFacultyRequest": {
            "type": "object",
            "properties": {
                "facultyName": {"type": "string"},
                "adminId": {"type": "string"}
            },
            "required": ["facultyName"]
        },
        "CreateDepartmentRequest": {
            "type": "object",
            "properties": {
                "departmentName": {"type": "string"},
                "facultyId": {"type": "string"}
            },
            "required": ["departmentName", "facultyId"]
        },
        "CreateMajorRequest": {
            "type": "object",
            "properties": {
                "majorName": {"type": "string"},
                "departmentId": {"type": "string"}
            },
            "required": ["majorName", "departmentId"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "courseName": {"type": "string"},
                "description": {"type": "string"},
                "credits": {"type": "integer", "minimum": 1, "maximum": 6},
                "gradeLevel": {"type": "string", "enum": ["First Year", "Second Year", "Third Year", "Fourth Year", "Fifth Year"]},
                "semesterNumber": {"type": "integer"},
                "courseType": {"type": "string", "enum": ["Mandatory", "Optional"]},
                "majorId": {"type": "string"},
                "instructorId": {"type": "string"}
            },
            "required": ["courseName", "description", "credits", "gradeLevel", "semesterNumber", "majorId", "instructorId"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "fileNumber": {"type": "integer"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "dob": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "registrationDate": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Inactive"]},
                "year": {"type": "string"},
                "majorId": {"type": "string"}
            },
            "required": ["fileNumber", "firstName", "lastName", "email", "majorId"]
        },
        "EnrollRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "courseId": {"type": "string"}
            },
            "required": ["studentId", "courseId"]
        },
        "SetGradeRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "courseId": {"type": "string"},
                "grade": {"type": "number", "minimum": 0, "maximum": 100}
            },
            "required": ["studentId", "courseId", "grade"]
        },
        "FieldViolation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/FieldViolation"}
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
