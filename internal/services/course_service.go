package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/attendance/internal/entities"
)

// CourseService implements the course-facing operations: add-or-update
// by code, lookups and deletion (with cascades handled by the store).
type CourseService struct {
	courses CourseStore
}

func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// AddOrUpdateCourse upserts a course keyed on its code. An empty code
// is rejected before touching the store.
func (s *CourseService) AddOrUpdateCourse(ctx context.Context, courseCode string) (*entities.Course, error) {
	courseCode = strings.TrimSpace(courseCode)
	if courseCode == "" {
		return nil, ErrEmptyCourseCode
	}

	course := &entities.Course{CourseCode: courseCode}
	if err := s.courses.Upsert(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course %s: %w", courseCode, err)
	}
	return course, nil
}

// GetCourseByCode fetches a single course; absence is reported as
// ErrCourseNotFound.
func (s *CourseService) GetCourseByCode(ctx context.Context, courseCode string) (*entities.Course, error) {
	course, err := s.courses.GetByCode(ctx, courseCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course %s: %w", courseCode, err)
	}
	return course, nil
}

// ListCourses returns every course.
func (s *CourseService) ListCourses(ctx context.Context) ([]entities.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// WatchCourses exposes the live course list.
func (s *CourseService) WatchCourses(ctx context.Context) <-chan []entities.Course {
	return s.courses.WatchAll(ctx)
}

// DeleteCourse removes the course and, through the store's cascade
// rules, its students and attendance records.
func (s *CourseService) DeleteCourse(ctx context.Context, courseCode string) error {
	if _, err := s.GetCourseByCode(ctx, courseCode); err != nil {
		return err
	}
	if err := s.courses.DeleteByCode(ctx, courseCode); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", courseCode, err)
	}
	return nil
}
