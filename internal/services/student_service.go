package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/attendance/internal/entities"
)

// StudentService implements roster management. The duplicate rule is a
// business rule, checked explicitly before insert rather than left to
// the store's key constraint.
type StudentService struct {
	students StudentStore
}

func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

// AddStudent enrolls a student in a course. A student with the same
// (enrollment number, course code) already on the roster is reported
// as ErrStudentExists without mutating state.
func (s *StudentService) AddStudent(ctx context.Context, student entities.Student) error {
	if student.EnrollmentNumber == "" || student.CourseCode == "" {
		return fmt.Errorf("enrollment number and course code are required")
	}

	_, err := s.students.GetByEnrollmentAndCourse(ctx, student.EnrollmentNumber, student.CourseCode)
	if err == nil {
		return ErrStudentExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing student: %w", err)
	}

	if err := s.students.Insert(ctx, &student); err != nil {
		return fmt.Errorf("failed to add student %s to %s: %w", student.EnrollmentNumber, student.CourseCode, err)
	}
	return nil
}

// UpdateStudent updates the student identified by the original
// (enrollment number, course code) tuple.
func (s *StudentService) UpdateStudent(ctx context.Context, student entities.Student) error {
	if _, err := s.GetStudent(ctx, student.EnrollmentNumber, student.CourseCode); err != nil {
		return err
	}
	if err := s.students.Update(ctx, &student); err != nil {
		return fmt.Errorf("failed to update student %s in %s: %w", student.EnrollmentNumber, student.CourseCode, err)
	}
	return nil
}

// DeleteStudent removes the student and, via cascade, their attendance
// rows.
func (s *StudentService) DeleteStudent(ctx context.Context, enrollmentNumber, courseCode string) error {
	if _, err := s.GetStudent(ctx, enrollmentNumber, courseCode); err != nil {
		return err
	}
	if err := s.students.Delete(ctx, enrollmentNumber, courseCode); err != nil {
		return fmt.Errorf("failed to delete student %s from %s: %w", enrollmentNumber, courseCode, err)
	}
	return nil
}

// GetStudent fetches one student; absence is reported as
// ErrStudentNotFound.
func (s *StudentService) GetStudent(ctx context.Context, enrollmentNumber, courseCode string) (*entities.Student, error) {
	student, err := s.students.GetByEnrollmentAndCourse(ctx, enrollmentNumber, courseCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student %s in %s: %w", enrollmentNumber, courseCode, err)
	}
	return student, nil
}

// GetStudentsByCourse returns the roster for a course.
func (s *StudentService) GetStudentsByCourse(ctx context.Context, courseCode string) ([]entities.Student, error) {
	students, err := s.students.GetByCourse(ctx, courseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list students for %s: %w", courseCode, err)
	}
	return students, nil
}

// WatchStudentsByCourse exposes the live roster for a course.
func (s *StudentService) WatchStudentsByCourse(ctx context.Context, courseCode string) <-chan []entities.Student {
	return s.students.WatchByCourse(ctx, courseCode)
}
