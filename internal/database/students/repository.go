// Package students provides database operations for per-course student
// rosters. Students are keyed by the composite
// (enrollment number, course code) tuple.
package students

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/notify"
)

// Repository handles all student database operations.
type Repository struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewRepository creates a new students repository. hub may be nil when
// no live queries are needed.
func NewRepository(db *gorm.DB, hub *notify.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

func (r *Repository) publish(tables ...string) {
	if r.hub == nil {
		return
	}
	for _, t := range tables {
		r.hub.Publish(t)
	}
}

// Insert creates a student row. The store rejects a duplicate
// (enrollment number, course code) pair; callers that want a typed
// duplicate condition pre-check with GetByEnrollmentAndCourse.
func (r *Repository) Insert(ctx context.Context, student *entities.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return err
	}
	r.publish(entities.Student{}.TableName())
	return nil
}

// Update saves the student's mutable fields, keyed on the original
// (enrollment number, course code) tuple.
func (r *Repository) Update(ctx context.Context, student *entities.Student) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Student{}).
		Where("enrollment_number = ? AND course_code = ?", student.EnrollmentNumber, student.CourseCode).
		Update("name", student.Name).Error
	if err != nil {
		return err
	}
	r.publish(entities.Student{}.TableName())
	return nil
}

// Delete removes the student identified by the composite key. That
// student's attendance rows go with it via the schema's cascade.
func (r *Repository) Delete(ctx context.Context, enrollmentNumber, courseCode string) error {
	err := r.db.WithContext(ctx).
		Where("enrollment_number = ? AND course_code = ?", enrollmentNumber, courseCode).
		Delete(&entities.Student{}).Error
	if err != nil {
		return err
	}
	r.publish(entities.Student{}.TableName(), entities.Attendance{}.TableName())
	return nil
}

// GetByEnrollmentAndCourse retrieves a single student by the composite
// key. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) GetByEnrollmentAndCourse(ctx context.Context, enrollmentNumber, courseCode string) (*entities.Student, error) {
	var student entities.Student
	err := r.db.WithContext(ctx).
		Where("enrollment_number = ? AND course_code = ?", enrollmentNumber, courseCode).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByCourse retrieves every student enrolled in the course.
func (r *Repository) GetByCourse(ctx context.Context, courseCode string) ([]entities.Student, error) {
	var students []entities.Student
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("enrollment_number ASC").
		Find(&students).Error
	return students, err
}

// WatchByCourse delivers the current roster for the course, then a
// fresh snapshot after every write to the students table, until ctx
// ends.
func (r *Repository) WatchByCourse(ctx context.Context, courseCode string) <-chan []entities.Student {
	out := make(chan []entities.Student, 1)
	signals := r.hub.Subscribe(ctx, entities.Student{}.TableName())

	go func() {
		defer close(out)
		for {
			snapshot, err := r.GetByCourse(ctx, courseCode)
			if err == nil {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
