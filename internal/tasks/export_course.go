package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/attendance/internal/services"
)

// ExportCourseTask writes one course's attendance CSV in the
// background.
type ExportCourseTask struct {
	CourseCode string `json:"course_code"`
}

// Config returns the queue configuration for course export tasks.
func (t ExportCourseTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_course",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportCourseProcessor creates a processor function for
// ExportCourseTask.
func ExportCourseProcessor(svc *services.AttendanceService) backlite.QueueProcessor[ExportCourseTask] {
	return func(ctx context.Context, task ExportCourseTask) error {
		if svc == nil {
			return fmt.Errorf("attendance service not configured")
		}

		path, err := svc.ExportCourseAttendance(ctx, task.CourseCode)
		if errors.Is(err, services.ErrNoAttendanceData) {
			// Nothing to export is a completed task, not a retryable
			// failure.
			log.Printf("[TASK] Course %s has no attendance to export", task.CourseCode)
			return nil
		}
		if err != nil {
			return fmt.Errorf("export course %s: %w", task.CourseCode, err)
		}

		log.Printf("[TASK] Exported course %s attendance to %s", task.CourseCode, path)
		return nil
	}
}

// NewExportCourseQueue creates a backlite queue for course export
// tasks.
func NewExportCourseQueue(svc *services.AttendanceService) backlite.Queue {
	return backlite.NewQueue(ExportCourseProcessor(svc))
}
