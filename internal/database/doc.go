// Package database provides the data access layer for the attendance
// store. Foreign keys are switched on at connection time so the
// declared cascade deletes are actually enforced.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── courses/         # Course CRUD and live course list
//	├── students/        # Per-course rosters, composite-key operations
//	└── attendance/      # Mark upserts, scoped queries, deletions
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./attendance.db")
//
//	// Create domain-specific repositories
//	hub := notify.NewHub()
//	courseRepo := courses.NewRepository(db.DB, hub)
//	studentRepo := students.NewRepository(db.DB, hub)
//
//	// Use repositories
//	course, err := courseRepo.GetByCode(ctx, "CS101")
//	roster, err := studentRepo.GetByCourse(ctx, "CS101")
//
// # Interface Implementations
//
// Each sub-package implements one of the store interfaces declared in
// internal/services:
//
//   - courses.Repository: implements services.CourseStore
//   - students.Repository: implements services.StudentStore
//   - attendance.Repository: implements services.AttendanceStore
//
// Writes publish the affected table on a notify.Hub; the Watch*
// operations re-query and deliver a fresh snapshot on every published
// change, so callers always observe whole-table state rather than
// deltas.
//
// # Adding a New Domain
//
// To add a new domain (e.g., terms):
//
//  1. Create a new sub-package: internal/database/terms/
//  2. Define a Repository struct with *gorm.DB and *notify.Hub fields
//  3. Add NewRepository(db *gorm.DB, hub *notify.Hub) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
