// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/attendance/internal/services"
)

// ExportSyncScheduler periodically exports every course's attendance
// to CSV, so the documents folder always carries a recent dump.
type ExportSyncScheduler struct {
	courses    *services.CourseService
	attendance *services.AttendanceService
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewExportSyncScheduler creates a new scheduler instance.
func NewExportSyncScheduler(courses *services.CourseService, attendance *services.AttendanceService, schedule string) *ExportSyncScheduler {
	return &ExportSyncScheduler{
		courses:    courses,
		attendance: attendance,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *ExportSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	var runCtx context.Context
	runCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSync(runCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule export sync '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Export sync scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sync to
// finish.
func (s *ExportSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Export sync scheduler: stopped")
}

func (s *ExportSyncScheduler) runSync(ctx context.Context) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		log.Printf("Export sync: failed to list courses: %v", err)
		return
	}

	exported := 0
	for _, course := range courses {
		path, err := s.attendance.ExportCourseAttendance(ctx, course.CourseCode)
		if errors.Is(err, services.ErrNoAttendanceData) {
			continue
		}
		if err != nil {
			log.Printf("Export sync: course %s failed: %v", course.CourseCode, err)
			continue
		}
		log.Printf("Export sync: wrote %s", path)
		exported++
	}
	log.Printf("Export sync: finished, %d of %d courses exported", exported, len(courses))
}
