package main

import (
	"context"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/api"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/lifecycle"
	marketplace "storefront/internal/infra/api"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/country"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/storage"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type loadStoresParams struct {
	fx.In
	fx.Lifecycle

	Logger         *slog.Logger
	Carts          usecase.CartUsecase
	PaymentMethods usecase.PaymentMethodUsecase
	Checkout       usecase.CheckoutUsecase
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			loadStores,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		storage.New,
		storage.NewWriter,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			marketplace.New,
			auth.NewJWTDecoder,
			country.NewCountryService,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCartService,
			impl.NewCheckoutService,
			impl.NewPaymentMethodService,
			impl.NewSessionService,
			impl.NewOrderService,
			impl.NewAddressService,
			impl.NewProductService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCartHandler,
			handler.NewCheckoutHandler,
			handler.NewPaymentMethodHandler,
			handler.NewSessionHandler,
			handler.NewOrderHandler,
			handler.NewProductHandler,
			handler.NewCountryHandler,
			handler.NewValidationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// loadStores restores persisted state before the API starts serving.
// Payment methods load before checkout, which reconciles against them.
func loadStores(params loadStoresParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Carts.Load(ctx)
			params.PaymentMethods.Load(ctx)
			params.Checkout.Load(ctx)

			params.Logger.Info("Storefront state restored",
				slog.Int("carts", len(params.Carts.Carts())),
				slog.String("selected_cart_id", params.Carts.SelectedCartID()),
			)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			flushCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return params.Carts.Flush(flushCtx)
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
