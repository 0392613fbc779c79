package components

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra/repository"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"go.uber.org/fx"
)

// Each repository serves both the write side and the read side; fx binds the
// same instance to both interfaces.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewCouponRepository,
			fx.As(new(commands.CouponRepository)),
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			repository.NewCouponUsageRepository,
			fx.As(new(commands.CouponUsageRepository)),
			fx.As(new(queries.CouponUsageReadStore)),
		),
		fx.Annotate(
			repository.NewCourseRepository,
			fx.As(new(commands.CourseRepository)),
			fx.As(new(queries.CourseReadStore)),
		),
		fx.Annotate(
			repository.NewEnrollmentRepository,
			fx.As(new(commands.EnrollmentRepository)),
			fx.As(new(queries.EnrollmentReadStore)),
		),
		fx.Annotate(
			repository.NewMemberRepository,
			fx.As(new(commands.MemberRepository)),
			fx.As(new(queries.MemberReadStore)),
		),
	),
)
