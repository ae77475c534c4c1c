// Package courses provides database operations for course management.
//
// # Usage
//
//	repo := courses.NewRepository(db, hub)
//	course, err := repo.GetByCode(ctx, "CS101")
package courses

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/notify"
)

// Repository handles all course database operations.
type Repository struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewRepository creates a new courses repository. hub may be nil when
// no live queries are needed (CLI usage).
func NewRepository(db *gorm.DB, hub *notify.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

func (r *Repository) publish() {
	if r.hub != nil {
		r.hub.Publish(entities.Course{}.TableName())
	}
}

// Upsert inserts the course or, when a course with the same code
// already exists, refreshes it in place. The existing row (and its id)
// is kept so dependent students and attendance survive re-adding a
// course.
func (r *Repository) Upsert(ctx context.Context, course *entities.Course) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(course).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// Update saves the full course record.
func (r *Repository) Update(ctx context.Context, course *entities.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return err
	}
	r.publish()
	return nil
}

// GetByCode retrieves a single course by its code. Returns
// gorm.ErrRecordNotFound when absent.
func (r *Repository) GetByCode(ctx context.Context, courseCode string) (*entities.Course, error) {
	var course entities.Course
	err := r.db.WithContext(ctx).Where("course_code = ?", courseCode).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetAll retrieves every course.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Course, error) {
	var courses []entities.Course
	err := r.db.WithContext(ctx).Order("course_code ASC").Find(&courses).Error
	return courses, err
}

// DeleteByCode removes a course. Students and attendance rows for the
// course are removed by the schema's cascade rules.
func (r *Repository) DeleteByCode(ctx context.Context, courseCode string) error {
	err := r.db.WithContext(ctx).Where("course_code = ?", courseCode).Delete(&entities.Course{}).Error
	if err != nil {
		return err
	}
	if r.hub != nil {
		r.hub.Publish(entities.Course{}.TableName())
		r.hub.Publish(entities.Student{}.TableName())
		r.hub.Publish(entities.Attendance{}.TableName())
	}
	return nil
}

// WatchAll delivers the current course list, then a fresh snapshot
// after every write to the courses table, until ctx ends.
func (r *Repository) WatchAll(ctx context.Context) <-chan []entities.Course {
	out := make(chan []entities.Course, 1)
	signals := r.hub.Subscribe(ctx, entities.Course{}.TableName())

	go func() {
		defer close(out)
		for {
			snapshot, err := r.GetAll(ctx)
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
