// Package cli implements the command-line subcommands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/attendance/internal/database"
	attendancerepo "github.com/mrlokans/attendance/internal/database/attendance"
	"github.com/mrlokans/attendance/internal/exporters"
	"github.com/mrlokans/attendance/internal/notify"
	"github.com/mrlokans/attendance/internal/services"
)

// ExportCommand writes one course's attendance CSV from the command
// line, without starting the server.
type ExportCommand struct {
	CourseCode   string
	DatabasePath string
	ExportDir    string
}

// NewExportCommand creates a new ExportCommand.
func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

// ParseFlags parses command line flags.
func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.CourseCode, "course", "", "Course code to export (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "./attendance.db", "Path to the attendance database file")
	fs.StringVar(&cmd.ExportDir, "output", "./documents", "Documents directory for the CSV export")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export a course's attendance records to a CSV file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -course CS101\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -course CS101 -output ~/Documents\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.CourseCode == "" {
		fs.Usage()
		return fmt.Errorf("-course is required")
	}

	return nil
}

// Run executes the export command.
func (cmd *ExportCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	if _, err := os.Stat(absDBPath); os.IsNotExist(err) {
		return fmt.Errorf("database file %s does not exist", absDBPath)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := attendancerepo.NewRepository(db.DB, notify.NewHub())
	exporter := exporters.NewCSVExporter(cmd.ExportDir)
	svc := services.NewAttendanceService(repo, exporter)

	path, err := svc.ExportCourseAttendance(context.Background(), cmd.CourseCode)
	if errors.Is(err, services.ErrNoAttendanceData) {
		fmt.Printf("No attendance data recorded for course %s\n", cmd.CourseCode)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported attendance for %s to %s\n", cmd.CourseCode, path)
	return nil
}
