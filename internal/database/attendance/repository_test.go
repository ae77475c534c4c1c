package attendance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/attendance/internal/database"
	"github.com/mrlokans/attendance/internal/entities"
	"github.com/mrlokans/attendance/internal/notify"
)

func setupTestRepo(t *testing.T) (*Repository, *database.Database) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.DB.Create(&entities.Course{CourseCode: "CS101"}).Error)
	require.NoError(t, db.DB.Create(&entities.Course{CourseCode: "MA202"}).Error)
	for _, s := range []entities.Student{
		{EnrollmentNumber: "E1", CourseCode: "CS101", Name: "Alice"},
		{EnrollmentNumber: "E2", CourseCode: "CS101", Name: "Bob"},
		{EnrollmentNumber: "E1", CourseCode: "MA202", Name: "Alice"},
	} {
		require.NoError(t, db.DB.Create(&s).Error)
	}

	return NewRepository(db.DB, notify.NewHub()), db
}

func mark(enrollment, course, date string, status entities.AttendanceStatus) *entities.Attendance {
	return &entities.Attendance{
		EnrollmentNumber: enrollment,
		CourseCode:       course,
		Date:             date,
		Status:           status,
	}
}

func TestRepository_Upsert_SecondMarkOverwrites(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusAbsent)))

	var count int64
	require.NoError(t, db.DB.Model(&entities.Attendance{}).
		Where("course_code = ? AND date = ? AND enrollment_number = ?", "CS101", "2025-01-01", "E1").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	records, err := repo.GetByCourseAndDate(ctx, "CS101", "2025-01-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entities.StatusAbsent, records[0].Status)
}

func TestRepository_GetAllForCourse_Ordering(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E2", "CS101", "2025-01-02", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-02", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusAbsent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "MA202", "2025-01-01", entities.StatusPresent)))

	records, err := repo.GetAllForCourse(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-01-01", records[0].Date)
	assert.Equal(t, "E1", records[1].EnrollmentNumber)
	assert.Equal(t, "E2", records[2].EnrollmentNumber)
}

func TestRepository_GetByStudent_AcrossCourses(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "MA202", "2025-01-01", entities.StatusAbsent)))

	records, err := repo.GetByStudent(ctx, "E1")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	inCourse, err := repo.GetForStudentInCourse(ctx, "CS101", "E1")
	require.NoError(t, err)
	require.Len(t, inCourse, 1)
	assert.Equal(t, "CS101", inCourse[0].CourseCode)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.UpdateStatus(ctx, "CS101", "2025-01-01", "E1", entities.StatusAbsent))

	records, err := repo.GetByCourseAndDate(ctx, "CS101", "2025-01-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entities.StatusAbsent, records[0].Status)
}

func TestRepository_DeleteByCourse(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "MA202", "2025-01-01", entities.StatusPresent)))

	require.NoError(t, repo.DeleteByCourse(ctx, "CS101"))

	records, err := repo.GetAllForCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = repo.GetAllForCourse(ctx, "MA202")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepository_DeleteByStudent_ScopedToCourse(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E1", "MA202", "2025-01-01", entities.StatusPresent)))

	require.NoError(t, repo.DeleteByStudent(ctx, "E1", "CS101"))

	records, err := repo.GetByStudent(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MA202", records[0].CourseCode)
}

func TestRepository_DeleteRecord(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, mark("E1", "CS101", "2025-01-01", entities.StatusPresent)))
	require.NoError(t, repo.Upsert(ctx, mark("E2", "CS101", "2025-01-01", entities.StatusPresent)))

	require.NoError(t, repo.DeleteRecord(ctx, "CS101", "2025-01-01", "E1"))

	records, err := repo.GetByCourseAndDate(ctx, "CS101", "2025-01-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "E2", records[0].EnrollmentNumber)
}

func TestRepository_UpsertBatch_Atomic(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	// The third record violates the student foreign key, so the whole
	// batch must roll back.
	batch := []entities.Attendance{
		*mark("E1", "CS101", "2025-01-01", entities.StatusPresent),
		*mark("E2", "CS101", "2025-01-01", entities.StatusPresent),
		*mark("ghost", "CS101", "2025-01-01", entities.StatusPresent),
	}
	err := repo.UpsertBatch(ctx, batch)
	assert.Error(t, err)

	records, getErr := repo.GetAllForCourse(ctx, "CS101")
	require.NoError(t, getErr)
	assert.Empty(t, records)
}

func TestRepository_UpsertBatch(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	batch := []entities.Attendance{
		*mark("E1", "CS101", "2025-01-01", entities.StatusPresent),
		*mark("E2", "CS101", "2025-01-01", entities.StatusAbsent),
	}
	require.NoError(t, repo.UpsertBatch(ctx, batch))

	records, err := repo.GetByCourseAndDate(ctx, "CS101", "2025-01-01")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
