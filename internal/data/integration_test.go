package data

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/testutil"
)

// bcrypt hash of an arbitrary password; repository tests never verify it.
const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func TestUserRepo_Integration_CreateAndLookup(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		req := testutil.StudentRequest("prune.laguerre@school.test")
		req.Normalize()
		created, err := repo.Create(ctx, req, testPasswordHash)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "prune.laguerre@school.test", created.Email)

		byEmail, err := repo.GetByEmail(ctx, created.Email)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)

		_, err = repo.Create(ctx, req, testPasswordHash)
		assert.ErrorIs(t, err, ErrEmailTaken)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepo_Integration_ConcurrentCreate(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		const numGoroutines = 10
		var wg sync.WaitGroup
		errs := make(chan error, numGoroutines)

		for i := range numGoroutines {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				req := testutil.StudentRequest(
					fmt.Sprintf("concurrent-%d-%d@school.test", id, time.Now().UnixNano()))
				req.Normalize()
				if _, err := repo.Create(ctx, req, testPasswordHash); err != nil {
					errs <- err
				}
			}(i)
		}

		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("concurrent create failed: %v", err)
		}

		users, err := repo.List(ctx, model.UsersListOptions{Limit: 50})
		require.NoError(t, err)
		assert.Len(t, users, numGoroutines)
	})
}

func TestCourseRepo_Integration_GradesAndSchedules(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		users := NewUserRepo(db)
		courses := NewCourseRepo(db)
		grades := NewGradeRepo(db)
		schedules := NewScheduleRepo(db)
		ctx := context.Background()

		teacher, err := users.Create(ctx, testutil.TeacherRequest("t@school.test"), testPasswordHash)
		require.NoError(t, err)
		student, err := users.Create(ctx, testutil.StudentRequest("s@school.test"), testPasswordHash)
		require.NoError(t, err)

		course, err := courses.Create(ctx, testutil.NewCourseRequest(teacher.ID).Build())
		require.NoError(t, err)
		assert.Equal(t, "MATH101", course.Code)

		_, err = courses.Create(ctx, testutil.NewCourseRequest(teacher.ID).Build())
		assert.ErrorIs(t, err, ErrCourseCodeExists)

		grade, err := grades.Create(ctx, testutil.GradeRequest(student.ID, course.ID, 15.5), teacher.ID)
		require.NoError(t, err)
		assert.InDelta(t, 15.5, grade.Value, 0.001)

		forStudent, err := grades.ListByStudent(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, forStudent, 1)
		assert.Equal(t, course.ID, forStudent[0].CourseID)

		sched, err := schedules.Create(ctx, testutil.ScheduleRequest(course.ID, "monday", "6A"))
		require.NoError(t, err)

		forGroup, err := schedules.ListByClassGroup(ctx, "6A")
		require.NoError(t, err)
		require.Len(t, forGroup, 1)
		assert.Equal(t, sched.ID, forGroup[0].ID)

		removed, err := schedules.Delete(ctx, sched.ID)
		require.NoError(t, err)
		assert.True(t, removed)
	})
}

func TestParentLinkRepo_Integration_LinkOnce(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		users := NewUserRepo(db)
		links := NewParentLinkRepo(db)
		ctx := context.Background()

		parent, err := users.Create(ctx, testutil.ParentRequest("p@school.test"), testPasswordHash)
		require.NoError(t, err)
		student, err := users.Create(ctx, testutil.StudentRequest("c@school.test"), testPasswordHash)
		require.NoError(t, err)

		link, err := links.Link(ctx, parent.ID, student.ID, "mother")
		require.NoError(t, err)
		assert.Equal(t, "mother", link.Relationship)

		_, err = links.Link(ctx, parent.ID, student.ID, "mother")
		assert.ErrorIs(t, err, ErrLinkExists)

		linked, err := links.IsLinked(ctx, parent.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, linked)

		linked, err = links.IsLinked(ctx, student.ID, parent.ID)
		require.NoError(t, err)
		assert.False(t, linked)

		children, err := links.ListChildren(ctx, parent.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, student.ID, children[0].ID)
	})
}

func TestAbsenceRepo_Integration_ListByStudent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		users := NewUserRepo(db)
		absences := NewAbsenceRepo(db)
		ctx := context.Background()

		teacher, err := users.Create(ctx, testutil.TeacherRequest("t2@school.test"), testPasswordHash)
		require.NoError(t, err)
		student, err := users.Create(ctx, testutil.StudentRequest("s2@school.test"), testPasswordHash)
		require.NoError(t, err)

		when := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		created, err := absences.Create(ctx, testutil.AbsenceRequest(student.ID, when), teacher.ID)
		require.NoError(t, err)
		assert.True(t, created.IsJustified)

		list, err := absences.ListByStudent(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, teacher.ID, list[0].TeacherID)
	})
}
