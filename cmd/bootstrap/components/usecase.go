package components

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/clock"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCouponUseCase,
		commands.NewCheckoutUseCase,
		commands.NewCourseUseCase,
		commands.NewWebhookUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCouponQueries,
		queries.NewCourseQueries,
		queries.NewEnrollmentQueries,
		queries.NewMemberQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
