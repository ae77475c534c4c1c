package entities

import "time"

// AttendanceStatus is the per-day mark for a single student.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "P"
	StatusAbsent  AttendanceStatus = "A"
)

// Valid reports whether the status is one of the known marks.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// DateLayout is the calendar-date format used for attendance dates.
const DateLayout = "2006-01-02"

type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseCode string    `gorm:"uniqueIndex;size:64;not null" json:"course_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Students   []Student    `gorm:"foreignKey:CourseCode;references:CourseCode;constraint:OnDelete:CASCADE" json:"students,omitempty"`
	Attendance []Attendance `gorm:"foreignKey:CourseCode;references:CourseCode;constraint:OnDelete:CASCADE" json:"-"`
}

// Student is identified by the composite (EnrollmentNumber, CourseCode):
// the same enrollment number may appear under several courses as
// distinct rows.
type Student struct {
	EnrollmentNumber string `gorm:"primaryKey;size:64" json:"enrollment_number"`
	CourseCode       string `gorm:"primaryKey;size:64;index" json:"course_code"`
	Name             string `gorm:"size:256" json:"name"`

	Attendance []Attendance `gorm:"foreignKey:EnrollmentNumber,CourseCode;references:EnrollmentNumber,CourseCode;constraint:OnDelete:CASCADE" json:"-"`
}

// Attendance carries a surrogate id; the upsert key is the natural
// (course_code, date, enrollment_number) tuple enforced by idx_attendance_mark.
type Attendance struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	EnrollmentNumber string           `gorm:"size:64;uniqueIndex:idx_attendance_mark,priority:3;index:idx_attendance_student" json:"enrollment_number"`
	CourseCode       string           `gorm:"size:64;uniqueIndex:idx_attendance_mark,priority:1;index;index:idx_attendance_student" json:"course_code"`
	Date             string           `gorm:"size:10;uniqueIndex:idx_attendance_mark,priority:2;index" json:"date"`
	Status           AttendanceStatus `gorm:"size:1" json:"status"`
}

func (Course) TableName() string {
	return "courses"
}

func (Student) TableName() string {
	return "students"
}

func (Attendance) TableName() string {
	return "attendance"
}
