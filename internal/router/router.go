package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dailydiet/internal/errors"
	"dailydiet/internal/handler"
	"dailydiet/internal/metrics"
	appmiddleware "dailydiet/internal/middleware"
	"dailydiet/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log logrus.FieldLogger,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	mealHandler *handler.MealHandler,
) {
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	guard := appmiddleware.SessionGuard(authService)

	authGroup := e.Group("/auth")
	authGroup.POST("/sign-up", authHandler.SignUp)
	authGroup.POST("/sign-in", authHandler.SignIn)
	authGroup.POST("/sign-out", authHandler.SignOut, guard)

	meals := e.Group("/meals", guard)
	meals.POST("", mealHandler.Create)
	meals.GET("", mealHandler.List)
	meals.GET("/summary", mealHandler.Summary)
	meals.GET("/:id", mealHandler.Get)
	meals.PUT("/:id", mealHandler.Update)
	meals.DELETE("/:id", mealHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator installed on the echo instance.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ErrorHandler renders every error as {"error": "..."} and logs server failures.
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "internal server error",
			}).SetInternal(err)
		}

		cause := err
		if he.Internal != nil {
			cause = he.Internal
		}
		entry := log.WithError(cause).WithFields(logrus.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"method":     c.Request().Method,
			"uri":        c.Request().RequestURI,
			"status":     he.Code,
		})
		switch {
		case he.Code >= http.StatusInternalServerError:
			entry.Error("request failed")
		case errors.IsDomain(cause):
			entry.Debug("request rejected")
		}

		body := he.Message
		if msg, ok := he.Message.(string); ok {
			body = errors.ErrorResponse{Error: msg}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			log.WithError(err).Warn("write error response")
		}
	}
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
			}).Info("request")
			return nil
		},
	})
}
