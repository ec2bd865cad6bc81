package dto

import "time"

// CourseProgress is one row of a learner's progress overview.
type CourseProgress struct {
	CourseID    string `json:"course_id"`
	CourseTitle string `json:"course_title"`
	Percentage  int    `json:"percentage"`
}

// StudentDashboardStats summarises a learner's standing in the catalog.
type StudentDashboardStats struct {
	TotalCoursesAvailable int64 `json:"total_courses_available"`
	EnrolledCoursesCount  int   `json:"enrolled_courses_count"`
	CompletedCoursesCount int   `json:"completed_courses_count"`
}

// AdminDashboardStats is the fleet-wide aggregate. TrendingCourse is "N/A"
// when no learner is enrolled in anything.
type AdminDashboardStats struct {
	TotalStudents     int64  `json:"total_students"`
	CompletedStudents int    `json:"completed_students"`
	TotalCourses      int64  `json:"total_courses"`
	TrendingCourse    string `json:"trending_course"`
}

// StudentRosterEntry annotates a student with enrollment aggregates for the
// admin roster view.
type StudentRosterEntry struct {
	ID                    string   `json:"id"`
	FullName              string   `json:"full_name"`
	Email                 string   `json:"email"`
	Gender                string   `json:"gender"`
	DateOfBirth           string   `json:"date_of_birth"`
	Status                string   `json:"status,omitempty"`
	CertificateAllowed    bool     `json:"certificate_allowed"`
	EnrolledCourseTitles  []string `json:"enrolled_course_titles"`
	TotalEnrolledCount    int      `json:"total_enrolled_count"`
	CompletedCoursesCount int      `json:"completed_courses_count"`
}

// ReviewWithCourse is a review annotated with its course title. The title is
// empty when the course has since been deleted.
type ReviewWithCourse struct {
	ID          string    `json:"id"`
	CourseTitle string    `json:"course_title,omitempty"`
	StudentName string    `json:"student_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdminInboxMessage is a student message joined with the sender's name.
type AdminInboxMessage struct {
	MessageID   string    `json:"message_id"`
	StudentName string    `json:"student_name"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
