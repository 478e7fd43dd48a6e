package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/insurancepro-api/internal/application/access"
	"github.com/insurancepro-api/internal/application/auth"
	"github.com/insurancepro-api/internal/application/notification"
	"github.com/insurancepro-api/internal/application/payment"
	"github.com/insurancepro-api/internal/application/policy"
	"github.com/insurancepro-api/internal/application/quote"
	"github.com/insurancepro-api/internal/config"
	"github.com/insurancepro-api/internal/transport/http/handler"
	appmiddleware "github.com/insurancepro-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, on the OTP endpoints.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10, cfg.TrustedProxies...)

	resolver := access.NewResolver(deps.JWTProvider)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:               deps.UserRepo,
		Mailer:                 deps.Mailer,
		JWTProvider:            deps.JWTProvider,
		OTPExpiry:              cfg.OTPExpiry,
		MaxAttempts:            cfg.OTPMaxAttempts,
		ClearOnDeliveryFailure: cfg.OTPClearOnDeliveryFailure,
		Now:                    deps.Now,
		GenerateCode:           deps.GenerateCode,
	})
	paymentSvc := payment.NewService(payment.ServiceDeps{
		Processor:      deps.Payments,
		PolicyRepo:     deps.PolicyRepo,
		Notifications:  deps.NotificationRepo,
		Counters:       deps.CounterRepo,
		Documents:      deps.Documents,
		Publisher:      deps.Publisher,
		Tokens:         resolver,
		Currency:       cfg.PaymentCurrency,
		PolicyValidity: cfg.PolicyValidity,
		Now:            deps.Now,
	})
	policySvc := policy.NewService(deps.PolicyRepo, deps.Documents)
	notifSvc := notification.NewService(deps.NotificationRepo)
	quoteSvc := quote.NewService(nil)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	quoteH := handler.NewQuoteHandler(quoteSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	policyH := handler.NewPolicyHandler(policySvc, resolver)
	notifH := handler.NewNotificationHandler(notifSvc, resolver)

	r.Get("/health", healthH.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(otpRL.Limit).Post("/send-otp", authH.SendOTP)
			r.With(otpRL.Limit).Post("/verify-otp", authH.VerifyOTP)
		})

		r.Post("/quotes", quoteH.Generate)

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-payment-intent", paymentH.CreateIntent)
			r.Post("/confirm-payment", paymentH.Confirm)
			r.Get("/policy/{policyId}", policyH.Get)
			r.Get("/policy/{policyId}/document", policyH.Document)
			r.Get("/policies", policyH.List)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/list", notifH.List)
			r.Put("/mark-all/read", notifH.MarkAllAsRead)
			r.Put("/{notificationId}/read", notifH.MarkAsRead)
		})
	})

	return r
}
