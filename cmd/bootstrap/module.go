package bootstrap

import (
	"github.com/AI-Authority/AI-Authority-sub000/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.PaymentModule,
	components.UseCaseModule,
	components.HandlerModule,
)
