package handler

import (
	"net/http"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	_ "github.com/Astemirdum/book-exchange/exchange/swagger"
	"github.com/Astemirdum/book-exchange/pkg/auth"
	md "github.com/Astemirdum/book-exchange/pkg/middleware"
	"github.com/Astemirdum/book-exchange/pkg/validate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	exchangeSvc ExchangeService
	reportSvc   ReportService
	userSvc     UserService
	verifier    md.TokenVerifier
	log         *zap.Logger
}

// @title Book Exchange API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func New(exchanges ExchangeService, reports ReportService, users UserService, verifier md.TokenVerifier, log *zap.Logger) *Handler {
	return &Handler{
		exchangeSvc: exchanges,
		reportSvc:   reports,
		userSvc:     users,
		verifier:    verifier,
		log:         log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HTTPErrorHandler = h.errorHandler
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication(h.verifier),
	)

	api.POST("/exchanges", h.CreateExchange)
	api.GET("/exchanges", h.ListExchanges)
	api.GET("/exchanges/:id", h.GetExchange)
	api.PUT("/exchanges/:id/accept", h.AcceptExchange)
	api.PUT("/exchanges/:id/decline", h.DeclineExchange)
	api.PUT("/exchanges/:id/confirm", h.ConfirmExchange)
	api.PUT("/exchanges/:id/cancel", h.CancelExchange)

	api.POST("/reports", h.CreateReport)
	api.GET("/reports", h.ListReports)
	api.GET("/reports/:id", h.GetReport)
	api.PUT("/reports/:id/status", h.UpdateReportStatus)
	api.PUT("/reports/:id/resolve", h.ResolveReport)

	api.GET("/users/me/points", h.Points)
	api.GET("/users/:id/trust", h.TrustScore)
	api.GET("/users/:id/assessment", h.Assessment)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func identity(c echo.Context) (auth.Identity, error) {
	id, err := auth.FromContext(c.Request().Context())
	if err != nil {
		return auth.Identity{}, errs.New(errs.KindAuthentication, "authentication required")
	}
	return id, nil
}

func idParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.Validation("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bind decodes the request into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.Validation("malformed request")
	}
	if err := c.Validate(req); err != nil {
		return invalid(err)
	}
	return nil
}
