// Package rest serves the booking API as JSON over HTTP for clients that
// cannot speak gRPC. Every route calls the gRPC handler, so validation and
// status codes are shared.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"medical-booking/internal/middleware"
	"medical-booking/internal/model"
	"medical-booking/internal/rpc"
)

type Server struct {
	h      rpc.BookingServiceServer
	secret string
	rl     *middleware.RateLimiter
	log    *slog.Logger
}

// New builds the echo app. rl may be nil to disable rate limiting.
func New(h rpc.BookingServiceServer, secret string, rl *middleware.RateLimiter, log *slog.Logger) *echo.Echo {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{h: h, secret: secret, rl: rl, log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// rate limit keys on the socket address, never on client headers
	e.IPExtractor = echo.ExtractIPDirect()

	e.GET("/healthz", Health)

	a := e.Group("/v1/auth")
	a.POST("/register", s.register, s.limit)
	a.POST("/login", s.login, s.limit)
	a.POST("/logout", s.logout, s.bearer)

	e.GET("/v1/me", s.me, s.bearer)
	e.PATCH("/v1/me", s.updateMe, s.bearer)

	g := e.Group("/v1/appointments", s.bearer)
	g.GET("", s.listAppointments)
	g.POST("", s.createAppointment)
	g.PATCH("/:id", s.updateAppointment)
	g.DELETE("/:id", s.deleteAppointment)
	return e
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// bearer puts the token's user id into the request context the way the
// gRPC auth interceptor does.
func (s *Server) bearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx, err := middleware.WithUser(req.Context(), req.Header.Get("Authorization"), s.secret)
		if err != nil {
			return s.fail(c, err)
		}
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

func (s *Server) limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.rl != nil && !s.rl.Allow(c.RealIP()) {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
		}
		return next(c)
	}
}

var httpStatus = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.AlreadyExists:     http.StatusConflict,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.DeadlineExceeded:  http.StatusGatewayTimeout,
	codes.Canceled:          499,
}

// fail writes a gRPC status error as {"error": message}.
func (s *Server) fail(c echo.Context, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		s.log.ErrorContext(c.Request().Context(), "rest", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	code, ok := httpStatus[st.Code()]
	if !ok {
		code = http.StatusInternalServerError
	}
	return c.JSON(code, echo.Map{"error": st.Message()})
}

func ctx(c echo.Context) context.Context { return c.Request().Context() }

var errBody = status.Error(codes.InvalidArgument, "invalid body")

type registerReq struct {
	model.Profile
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errBody)
	}
	resp, err := s.h.Register(ctx(c), &rpc.RegisterRequest{Profile: req.Profile, Password: req.Password})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{User: resp.User, Token: resp.Token})
}

func (s *Server) login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errBody)
	}
	resp, err := s.h.Login(ctx(c), &rpc.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, authResp{User: resp.User, Token: resp.Token})
}

func (s *Server) logout(c echo.Context) error {
	if _, err := s.h.Logout(ctx(c), &rpc.Empty{}); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) me(c echo.Context) error {
	resp, err := s.h.CurrentUser(ctx(c), &rpc.Empty{})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": resp.User})
}

func (s *Server) updateMe(c echo.Context) error {
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return s.fail(c, errBody)
	}
	resp, err := s.h.UpdateProfile(ctx(c), &rpc.UpdateProfileRequest{UserPatch: patch})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": resp.User})
}

func (s *Server) listAppointments(c echo.Context) error {
	resp, err := s.h.ListAppointments(ctx(c), &rpc.Empty{})
	if err != nil {
		return s.fail(c, err)
	}
	apts := resp.Appointments
	if apts == nil {
		apts = []model.Appointment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": apts})
}

func (s *Server) createAppointment(c echo.Context) error {
	var d model.AppointmentDetails
	if err := c.Bind(&d); err != nil {
		return s.fail(c, errBody)
	}
	resp, err := s.h.CreateAppointment(ctx(c), &rpc.CreateAppointmentRequest{AppointmentDetails: d})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, resp.Appointment)
}

func (s *Server) updateAppointment(c echo.Context) error {
	var patch model.AppointmentPatch
	if err := c.Bind(&patch); err != nil {
		return s.fail(c, errBody)
	}
	resp, err := s.h.UpdateAppointment(ctx(c), &rpc.UpdateAppointmentRequest{ID: c.Param("id"), Patch: patch})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp.Appointment)
}

func (s *Server) deleteAppointment(c echo.Context) error {
	_, err := s.h.DeleteAppointment(ctx(c), &rpc.DeleteAppointmentRequest{ID: c.Param("id")})
	if err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
