//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("success: course lands in pending state", func(t *testing.T) {
		repo := newFakeCourseRepo()
		uc := commands.NewCourseUseCase(repo)

		id, err := uc.SubmitCourse(ctx, reqdto.CreateCourseRequest{
			Title:       "Retrieval Augmented Generation in Practice",
			Description: "Hands-on RAG pipelines",
			PriceCents:  29900,
			ModuleCount: 12,
		}, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, course.StatusPending, repo.byID[id].Status)
	})

	t.Run("error: empty title", func(t *testing.T) {
		uc := commands.NewCourseUseCase(newFakeCourseRepo())

		_, err := uc.SubmitCourse(ctx, reqdto.CreateCourseRequest{Title: "", PriceCents: 1000}, uuid.New())

		assert.ErrorIs(t, err, commands.ErrInvalidCourse)
	})

	t.Run("error: negative price", func(t *testing.T) {
		uc := commands.NewCourseUseCase(newFakeCourseRepo())

		_, err := uc.SubmitCourse(ctx, reqdto.CreateCourseRequest{Title: "Bad", PriceCents: -100}, uuid.New())

		assert.ErrorIs(t, err, commands.ErrInvalidCourse)
	})
}

func TestReviewCourse(t *testing.T) {
	ctx := context.Background()

	pendingCourse := func() *commands.CourseSnapshot {
		s := courseSnap(10000)
		s.Status = course.StatusPending
		return s
	}

	t.Run("success: approve makes the course purchasable", func(t *testing.T) {
		snap := pendingCourse()
		repo := newFakeCourseRepo(snap)
		uc := commands.NewCourseUseCase(repo)

		require.NoError(t, uc.ApproveCourse(ctx, snap.ID))
		assert.Equal(t, course.StatusApproved, repo.byID[snap.ID].Status)
	})

	t.Run("success: reject is terminal", func(t *testing.T) {
		snap := pendingCourse()
		repo := newFakeCourseRepo(snap)
		uc := commands.NewCourseUseCase(repo)

		require.NoError(t, uc.RejectCourse(ctx, snap.ID))
		assert.Equal(t, course.StatusRejected, repo.byID[snap.ID].Status)
	})

	t.Run("error: already reviewed course cannot be re-reviewed", func(t *testing.T) {
		snap := courseSnap(10000) // approved
		uc := commands.NewCourseUseCase(newFakeCourseRepo(snap))

		err := uc.RejectCourse(ctx, snap.ID)

		assert.ErrorIs(t, err, commands.ErrCourseNotReviewable)
	})

	t.Run("error: unknown course", func(t *testing.T) {
		uc := commands.NewCourseUseCase(newFakeCourseRepo())

		err := uc.ApproveCourse(ctx, uuid.New())

		assert.ErrorIs(t, err, commands.ErrCourseNotFound)
	})
}
