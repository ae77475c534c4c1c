package services

import "errors"

// Conditions callers branch on. Anything else coming out of the
// service layer is a wrapped storage or I/O error.
var (
	// ErrStudentExists reports the add-student duplicate rule: a
	// student with the same (enrollment number, course code) is
	// already enrolled. The store is left untouched.
	ErrStudentExists = errors.New("student already exists in this course")

	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")

	// ErrNoAttendanceData distinguishes "nothing to export" from an
	// export failure; no file is written when it is returned.
	ErrNoAttendanceData = errors.New("no attendance data available for export")

	ErrEmptyCourseCode = errors.New("course code must not be empty")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStatus   = errors.New("status must be \"P\" or \"A\"")
)
