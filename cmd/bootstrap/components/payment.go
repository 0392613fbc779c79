package components

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/infra/payment"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			payment.NewStripeGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			payment.NewStripeWebhookVerifier,
			fx.As(new(commands.WebhookVerifier)),
		),
	),
)
