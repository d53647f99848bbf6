package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/botpinghq/botping/internal/liveness"
)

type pingResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

type PingHandler struct {
	logger  *slog.Logger
	service *liveness.Service
}

func NewPingHandler(log *slog.Logger, service *liveness.Service) *PingHandler {
	return &PingHandler{
		logger:  log.With(slog.String("handler", "ping")),
		service: service,
	}
}

func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/ping/:bot", h.Ping)
	e.HEAD("/health", h.Health)
}

// Ping answers whether the named bot is currently reachable. The token is
// the raw Authorization header value, not a bearer scheme.
func (h *PingHandler) Ping(c echo.Context) error {
	token := c.Request().Header.Get("Authorization")
	if token == "" {
		h.logger.Debug("missing authorization header")
		return echo.NewHTTPError(http.StatusBadRequest, "Authorization header is required")
	}
	bot := c.Param("bot")
	if !strings.HasPrefix(bot, "@") {
		h.logger.Debug("malformed bot handle", slog.String("bot", bot))
		return echo.NewHTTPError(http.StatusBadRequest, "bot handle must start with @")
	}

	switch h.service.Check(c.Request().Context(), token, bot) {
	case liveness.StatusOnline:
		return c.JSON(http.StatusOK, pingResponse{Message: "Alive", Status: true})
	case liveness.StatusNotFound:
		return c.JSON(http.StatusNotFound, pingResponse{Message: "No response from the bot", Status: false})
	case liveness.StatusUnauthorized:
		return c.JSON(http.StatusUnauthorized, pingResponse{Message: "Unauthorized", Status: false})
	default:
		return c.JSON(http.StatusInternalServerError, pingResponse{Message: "Server Error", Status: false})
	}
}

func (h *PingHandler) Health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
