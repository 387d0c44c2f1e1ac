// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CartHandler          *handler.CartHandler
	CheckoutHandler      *handler.CheckoutHandler
	PaymentMethodHandler *handler.PaymentMethodHandler
	SessionHandler       *handler.SessionHandler
	OrderHandler         *handler.OrderHandler
	ProductHandler       *handler.ProductHandler
	CountryHandler       *handler.CountryHandler
	ValidationHandler    *handler.ValidationHandler
	SessionMiddleware    *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cart          *handler.CartHandler
	checkout      *handler.CheckoutHandler
	paymentMethod *handler.PaymentMethodHandler
	session       *handler.SessionHandler
	order         *handler.OrderHandler
	product       *handler.ProductHandler
	country       *handler.CountryHandler
	validation    *handler.ValidationHandler
	requireLogin  echo.MiddlewareFunc
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cart:          params.CartHandler,
		checkout:      params.CheckoutHandler,
		paymentMethod: params.PaymentMethodHandler,
		session:       params.SessionHandler,
		order:         params.OrderHandler,
		product:       params.ProductHandler,
		country:       params.CountryHandler,
		validation:    params.ValidationHandler,
		requireLogin:  params.SessionMiddleware.RequireSession,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	carts := e.Group("/carts")
	{
		carts.GET("", r.cart.ListCarts)
		carts.POST("", r.cart.CreateCart)
		carts.GET("/selected", r.cart.GetSelectedCart)
		carts.PUT("/selected", r.cart.SelectCart)
		carts.POST("/invites", r.cart.JoinByInvite)
		carts.GET("/:id", r.cart.GetCart)
		carts.PATCH("/:id", r.cart.RenameCart)
		carts.DELETE("/:id", r.cart.DeleteCart)
		carts.POST("/:id/items", r.cart.AddItem)
		carts.DELETE("/:id/items", r.cart.ClearCart)
		carts.PATCH("/:id/items/:itemId", r.cart.UpdateItemQuantity)
		carts.DELETE("/:id/items/:itemId", r.cart.RemoveItem)
		carts.POST("/:id/products", r.cart.AddProduct)
		carts.POST("/:id/invited", r.cart.InvitePerson)
		carts.DELETE("/:id/invited/:person", r.cart.RemovePerson)
		carts.GET("/:id/totals", r.cart.Totals)
		carts.GET("/:id/invite-qr", r.cart.InviteQR)
	}

	checkout := e.Group("/checkout")
	{
		checkout.GET("", r.checkout.GetCheckout)
		checkout.DELETE("", r.checkout.ClearCheckout)
		checkout.PUT("/address", r.checkout.SetAddress)
		checkout.DELETE("/address", r.checkout.ClearAddress)
		checkout.PUT("/payment-method", r.checkout.SetPaymentMethod)
		checkout.DELETE("/payment-method", r.checkout.ClearPaymentMethod)
		checkout.POST("/orders", r.checkout.PlaceOrder, r.requireLogin)
	}

	paymentMethods := e.Group("/payment-methods")
	{
		paymentMethods.GET("", r.paymentMethod.List)
		paymentMethods.POST("", r.paymentMethod.Add)
		paymentMethods.DELETE("/:id", r.paymentMethod.Remove)
		paymentMethods.PUT("/:id/default", r.paymentMethod.SetDefault)
		paymentMethods.POST("/sync", r.paymentMethod.Sync, r.requireLogin)
	}

	session := e.Group("/session")
	{
		session.POST("", r.session.Login)
		session.DELETE("", r.session.Logout)
		session.GET("", r.session.GetSession, r.requireLogin)
		session.GET("/me", r.session.Me, r.requireLogin)
		session.PUT("/password", r.session.ChangePassword, r.requireLogin)
		session.DELETE("/account", r.session.DeleteAccount, r.requireLogin)
	}

	orders := e.Group("/orders", r.requireLogin)
	{
		orders.GET("", r.order.ListOrders)
		orders.GET("/:id", r.order.GetOrder)
		orders.GET("/:id/history", r.order.StatusHistory)
		orders.GET("/:id/lines", r.order.OrderLines)
		orders.PUT("/:id/status", r.order.UpdateOrderStatus)
	}

	addresses := e.Group("/addresses", r.requireLogin)
	{
		addresses.GET("", r.order.ListAddresses)
		addresses.POST("", r.order.AddAddress)
		addresses.GET("/default", r.order.DefaultAddress)
		addresses.PUT("/:id", r.order.UpdateAddress)
		addresses.DELETE("/:id", r.order.DeleteAddress)
		addresses.PUT("/:id/default", r.order.SetDefaultAddress)
	}

	products := e.Group("/products")
	{
		products.GET("", r.product.ListProducts)
		products.GET("/:id", r.product.GetProduct)
	}

	e.GET("/countries", r.country.ListCountries)

	validate := e.Group("/validate")
	{
		validate.POST("/card", r.validation.Card)
		validate.POST("/expiry", r.validation.Expiry)
		validate.POST("/cvv", r.validation.CVV)
		validate.POST("/mobile-money", r.validation.MobileMoney)
		validate.POST("/id-document", r.validation.IDDocument)
		validate.POST("/phone", r.validation.Phone)
	}
}
