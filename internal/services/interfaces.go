package services

import (
	"context"

	"github.com/mrlokans/attendance/internal/entities"
)

// CourseStore provides persistence for courses.
type CourseStore interface {
	Upsert(ctx context.Context, course *entities.Course) error
	Update(ctx context.Context, course *entities.Course) error
	GetByCode(ctx context.Context, courseCode string) (*entities.Course, error)
	GetAll(ctx context.Context) ([]entities.Course, error)
	DeleteByCode(ctx context.Context, courseCode string) error
	WatchAll(ctx context.Context) <-chan []entities.Course
}

// StudentStore provides persistence for per-course student rosters.
type StudentStore interface {
	Insert(ctx context.Context, student *entities.Student) error
	Update(ctx context.Context, student *entities.Student) error
	Delete(ctx context.Context, enrollmentNumber, courseCode string) error
	GetByEnrollmentAndCourse(ctx context.Context, enrollmentNumber, courseCode string) (*entities.Student, error)
	GetByCourse(ctx context.Context, courseCode string) ([]entities.Student, error)
	WatchByCourse(ctx context.Context, courseCode string) <-chan []entities.Student
}

// AttendanceStore provides persistence for attendance marks.
type AttendanceStore interface {
	Upsert(ctx context.Context, record *entities.Attendance) error
	UpsertBatch(ctx context.Context, records []entities.Attendance) error
	GetByCourseAndDate(ctx context.Context, courseCode, date string) ([]entities.Attendance, error)
	GetAllForCourse(ctx context.Context, courseCode string) ([]entities.Attendance, error)
	GetByStudent(ctx context.Context, enrollmentNumber string) ([]entities.Attendance, error)
	GetForStudentInCourse(ctx context.Context, courseCode, enrollmentNumber string) ([]entities.Attendance, error)
	UpdateStatus(ctx context.Context, courseCode, date, enrollmentNumber string, status entities.AttendanceStatus) error
	DeleteByCourse(ctx context.Context, courseCode string) error
	DeleteByStudent(ctx context.Context, enrollmentNumber, courseCode string) error
	DeleteRecord(ctx context.Context, courseCode, date, enrollmentNumber string) error
	WatchForCourse(ctx context.Context, courseCode string) <-chan []entities.Attendance
}

// TableExporter writes a header row plus data rows to a named
// destination and returns the absolute path of the written file.
type TableExporter interface {
	Export(fileName string, headers []string, rows [][]string) (string, error)
}
