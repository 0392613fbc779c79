package commands

import (
	"context"

	"github.com/AI-Authority/AI-Authority-sub000/internal/domain/course"
	reqdto "github.com/AI-Authority/AI-Authority-sub000/internal/handler/dto/request"
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCourse         = errs.New("invalid course submission")
	ErrCourseNotReviewable   = errs.New("course is not pending review")
	ErrCourseOperationFailed = errs.New("course operation failed")
)

type CourseCommands interface {
	SubmitCourse(ctx context.Context, req reqdto.CreateCourseRequest, trainerID uuid.UUID) (uuid.UUID, error)
	ApproveCourse(ctx context.Context, id uuid.UUID) error
	RejectCourse(ctx context.Context, id uuid.UUID) error
}

type courseUseCaseImpl struct {
	courseRepo CourseRepository
}

func NewCourseUseCase(courseRepo CourseRepository) CourseCommands {
	return &courseUseCaseImpl{courseRepo: courseRepo}
}

// SubmitCourse registers a trainer's offering in pending state. It becomes
// purchasable only after an admin approves it.
func (u *courseUseCaseImpl) SubmitCourse(ctx context.Context, req reqdto.CreateCourseRequest, trainerID uuid.UUID) (uuid.UUID, error) {
	entity, err := course.NewCourse(uuid.New(), trainerID, req.Title, req.Description, req.PriceCents, req.ModuleCount)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidCourse)
	}

	id, err := u.courseRepo.Create(ctx, entity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrCourseOperationFailed)
	}
	return id, nil
}

func (u *courseUseCaseImpl) ApproveCourse(ctx context.Context, id uuid.UUID) error {
	return u.review(ctx, id, course.StatusApproved)
}

func (u *courseUseCaseImpl) RejectCourse(ctx context.Context, id uuid.UUID) error {
	return u.review(ctx, id, course.StatusRejected)
}

func (u *courseUseCaseImpl) review(ctx context.Context, id uuid.UUID, status course.Status) error {
	snap, err := u.courseRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrCourseNotFound)
		}
		return errs.Mark(err, ErrCourseOperationFailed)
	}

	if snap.Status != course.StatusPending {
		return ErrCourseNotReviewable
	}

	if err := u.courseRepo.UpdateStatus(ctx, id, status); err != nil {
		return errs.Mark(err, ErrCourseOperationFailed)
	}
	return nil
}
