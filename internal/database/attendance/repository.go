// Package attendance provides database operations for per-date
// attendance marks.
//
// Marks are upserted on the natural (course code, date, enrollment
// number) key: marking the same student twice for the same date
// overwrites the status instead of adding a second row.
package attendance

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/notify"
)

// Repository handles all attendance database operations.
type Repository struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewRepository creates a new attendance repository. hub may be nil
// when no live queries are needed.
func NewRepository(db *gorm.DB, hub *notify.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

func (r *Repository) publish() {
	if r.hub != nil {
		r.hub.Publish(entities.Attendance{}.TableName())
	}
}

var conflictOnNaturalKey = clause.OnConflict{
	Columns: []clause.Column{
		{Name: "course_code"},
		{Name: "date"},
		{Name: "enrollment_number"},
	},
	DoUpdates: clause.AssignmentColumns([]string{"status"}),
}

// Upsert stores the mark, replacing any existing mark for the same
// (course code, date, enrollment number).
func (r *Repository) Upsert(ctx context.Context, record *entities.Attendance) error {
	err := r.db.WithContext(ctx).Clauses(conflictOnNaturalKey).Create(record).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// UpsertBatch stores several marks in one transaction. Either all
// marks land or none do.
func (r *Repository) UpsertBatch(ctx context.Context, records []entities.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Clauses(conflictOnNaturalKey).Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// GetByCourseAndDate retrieves the marks for one course on one date.
func (r *Repository) GetByCourseAndDate(ctx context.Context, courseCode, date string) ([]entities.Attendance, error) {
	var records []entities.Attendance
	err := r.db.WithContext(ctx).
		Where("course_code = ? AND date = ?", courseCode, date).
		Order("enrollment_number ASC").
		Find(&records).Error
	return records, err
}

// GetAllForCourse retrieves every mark recorded for the course,
// ordered by date then enrollment number.
func (r *Repository) GetAllForCourse(ctx context.Context, courseCode string) ([]entities.Attendance, error) {
	var records []entities.Attendance
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("date ASC, enrollment_number ASC").
		Find(&records).Error
	return records, err
}

// GetByStudent retrieves every mark for the enrollment number across
// all courses.
func (r *Repository) GetByStudent(ctx context.Context, enrollmentNumber string) ([]entities.Attendance, error) {
	var records []entities.Attendance
	err := r.db.WithContext(ctx).
		Where("enrollment_number = ?", enrollmentNumber).
		Order("date ASC, course_code ASC").
		Find(&records).Error
	return records, err
}

// GetForStudentInCourse retrieves the marks for one student within one
// course.
func (r *Repository) GetForStudentInCourse(ctx context.Context, courseCode, enrollmentNumber string) ([]entities.Attendance, error) {
	var records []entities.Attendance
	err := r.db.WithContext(ctx).
		Where("course_code = ? AND enrollment_number = ?", courseCode, enrollmentNumber).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

// UpdateStatus changes the stored status for one mark, keyed by the
// natural key.
func (r *Repository) UpdateStatus(ctx context.Context, courseCode, date, enrollmentNumber string, status entities.AttendanceStatus) error {
	err := r.db.WithContext(ctx).
		Model(&entities.Attendance{}).
		Where("course_code = ? AND date = ? AND enrollment_number = ?", courseCode, date, enrollmentNumber).
		Update("status", status).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// DeleteByCourse removes every mark for the course.
func (r *Repository) DeleteByCourse(ctx context.Context, courseCode string) error {
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Delete(&entities.Attendance{}).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// DeleteByStudent removes every mark for the enrollment number. When
// courseCode is non-empty the deletion is limited to that course.
func (r *Repository) DeleteByStudent(ctx context.Context, enrollmentNumber, courseCode string) error {
	q := r.db.WithContext(ctx).Where("enrollment_number = ?", enrollmentNumber)
	if courseCode != "" {
		q = q.Where("course_code = ?", courseCode)
	}
	if err := q.Delete(&entities.Attendance{}).Error; err != nil {
		return err
	}
	r.publish()
	return nil
}

// DeleteRecord removes a single mark by its natural key.
func (r *Repository) DeleteRecord(ctx context.Context, courseCode, date, enrollmentNumber string) error {
	err := r.db.WithContext(ctx).
		Where("course_code = ? AND date = ? AND enrollment_number = ?", courseCode, date, enrollmentNumber).
		Delete(&entities.Attendance{}).Error
	if err != nil {
		return err
	}
	r.publish()
	return nil
}

// WatchForCourse delivers the course's current marks, then a fresh
// snapshot after every write to the attendance table, until ctx ends.
func (r *Repository) WatchForCourse(ctx context.Context, courseCode string) <-chan []entities.Attendance {
	out := make(chan []entities.Attendance, 1)
	signals := r.hub.Subscribe(ctx, entities.Attendance{}.TableName())

	go func() {
		defer close(out)
		for {
			snapshot, err := r.GetAllForCourse(ctx, courseCode)
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
