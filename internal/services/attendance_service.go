package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/attendance/internal/entities"
)

// ExportHeaders is the fixed header row of the attendance CSV export.
var ExportHeaders = []string{"Course Code", "Date", "Enrollment Number", "Status"}

// AttendanceService implements mark-attendance and the CSV export
// projection.
type AttendanceService struct {
	attendance AttendanceStore
	exporter   TableExporter
}

func NewAttendanceService(attendance AttendanceStore, exporter TableExporter) *AttendanceService {
	return &AttendanceService{attendance: attendance, exporter: exporter}
}

func validateMark(date string, status entities.AttendanceStatus) error {
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// MarkAttendance records the status for one student on one date.
// Marking the same (course, date, student) again overwrites the
// previous status.
func (s *AttendanceService) MarkAttendance(ctx context.Context, courseCode, date, enrollmentNumber string, status entities.AttendanceStatus) error {
	if courseCode == "" || enrollmentNumber == "" {
		return fmt.Errorf("course code and enrollment number are required")
	}
	if err := validateMark(date, status); err != nil {
		return err
	}

	record := &entities.Attendance{
		CourseCode:       courseCode,
		Date:             date,
		EnrollmentNumber: enrollmentNumber,
		Status:           status,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to mark attendance for %s in %s on %s: %w", enrollmentNumber, courseCode, date, err)
	}
	return nil
}

// MarkAttendanceBatch records a whole set of marks atomically, e.g.
// when a full class sheet is saved at once.
func (s *AttendanceService) MarkAttendanceBatch(ctx context.Context, records []entities.Attendance) error {
	for _, rec := range records {
		if rec.CourseCode == "" || rec.EnrollmentNumber == "" {
			return fmt.Errorf("course code and enrollment number are required")
		}
		if err := validateMark(rec.Date, rec.Status); err != nil {
			return err
		}
	}
	if err := s.attendance.UpsertBatch(ctx, records); err != nil {
		return fmt.Errorf("failed to mark attendance batch: %w", err)
	}
	return nil
}

// GetAttendanceByCourseAndDate returns the marks of one course on one
// date.
func (s *AttendanceService) GetAttendanceByCourseAndDate(ctx context.Context, courseCode, date string) ([]entities.Attendance, error) {
	records, err := s.attendance.GetByCourseAndDate(ctx, courseCode, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for %s on %s: %w", courseCode, date, err)
	}
	return records, nil
}

// GetAllAttendanceForCourse returns every mark of a course, ordered by
// date then enrollment number.
func (s *AttendanceService) GetAllAttendanceForCourse(ctx context.Context, courseCode string) ([]entities.Attendance, error) {
	records, err := s.attendance.GetAllForCourse(ctx, courseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for %s: %w", courseCode, err)
	}
	return records, nil
}

// GetAttendanceForStudentInCourse returns one student's marks within a
// course.
func (s *AttendanceService) GetAttendanceForStudentInCourse(ctx context.Context, courseCode, enrollmentNumber string) ([]entities.Attendance, error) {
	records, err := s.attendance.GetForStudentInCourse(ctx, courseCode, enrollmentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance for %s in %s: %w", enrollmentNumber, courseCode, err)
	}
	return records, nil
}

// DeleteAttendanceRecord removes a single mark by its natural key.
func (s *AttendanceService) DeleteAttendanceRecord(ctx context.Context, courseCode, date, enrollmentNumber string) error {
	if err := s.attendance.DeleteRecord(ctx, courseCode, date, enrollmentNumber); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// WatchAttendanceForCourse exposes the live mark list for a course.
func (s *AttendanceService) WatchAttendanceForCourse(ctx context.Context, courseCode string) <-chan []entities.Attendance {
	return s.attendance.WatchForCourse(ctx, courseCode)
}

// ExportRows projects a course's marks into the CSV row shape:
// [course code, date, enrollment number, status].
func ExportRows(records []entities.Attendance) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.CourseCode, rec.Date, rec.EnrollmentNumber, string(rec.Status)})
	}
	return rows
}

// ExportCourseAttendance writes every mark of the course to a CSV file
// and returns the file's absolute path. A course with no marks yields
// ErrNoAttendanceData and no file.
func (s *AttendanceService) ExportCourseAttendance(ctx context.Context, courseCode string) (string, error) {
	records, err := s.attendance.GetAllForCourse(ctx, courseCode)
	if err != nil {
		return "", fmt.Errorf("failed to fetch attendance for export of %s: %w", courseCode, err)
	}
	if len(records) == 0 {
		return "", ErrNoAttendanceData
	}

	path, err := s.exporter.Export("Attendance_"+courseCode, ExportHeaders, ExportRows(records))
	if err != nil {
		return "", fmt.Errorf("failed to export attendance for %s: %w", courseCode, err)
	}
	return path, nil
}
