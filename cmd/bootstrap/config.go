package bootstrap

import (
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sub-configs for constructors that only need a slice of the whole
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
		func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
	),
)
