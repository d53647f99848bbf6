package liveness

import (
	"context"
	"log/slog"

	"github.com/botpinghq/botping/internal/auth"
	"github.com/botpinghq/botping/internal/bots"
	"github.com/botpinghq/botping/internal/probe"
)

const (
	// StatusOnline indicates the probe reached the bot.
	StatusOnline = "online"
	// StatusNotFound indicates an allow-listed bot did not answer the probe.
	StatusNotFound = "not_found"
	// StatusUnauthorized indicates the caller's token is not recognized.
	StatusUnauthorized = "unauthorized"
	// StatusInternalError covers allow-list misses, probe failures, and
	// anything else that is not one of the statuses above.
	StatusInternalError = "internal_error"
)

// Service answers "is this bot reachable?" for one request at a time. It
// holds no mutable state: the token store and allow-list are immutable
// after startup and the prober is invoked at most once per check.
type Service struct {
	logger    *slog.Logger
	tokens    *auth.Store
	allowlist *bots.Allowlist
	prober    probe.Prober
}

// NewService creates a liveness service over the given lookup tables and
// prober.
func NewService(log *slog.Logger, tokens *auth.Store, allowlist *bots.Allowlist, prober probe.Prober) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		logger:    log.With(slog.String("service", "liveness")),
		tokens:    tokens,
		allowlist: allowlist,
		prober:    prober,
	}
}

// Check validates the token, then the handle, then probes. The token is
// checked before the allow-list so callers without a valid token learn
// nothing about which handles exist. Probe detail never reaches the
// caller; it is logged here and collapsed into the coarse status.
func (s *Service) Check(ctx context.Context, token, handle string) string {
	if !s.tokens.IsValid(token) {
		s.logger.Info("unauthorized token")
		return StatusUnauthorized
	}
	if !s.allowlist.IsAllowed(handle) {
		s.logger.Warn("handle not allow-listed", slog.String("bot", handle))
		return StatusInternalError
	}
	if s.prober == nil {
		s.logger.Error("prober not configured")
		return StatusInternalError
	}
	outcome := s.prober.Probe(ctx, handle)
	switch outcome.Status {
	case probe.StatusAlive:
		return StatusOnline
	case probe.StatusDead:
		s.logger.Info("no response from bot", slog.String("bot", handle))
		return StatusNotFound
	default:
		s.logger.Error("probe failed",
			slog.String("bot", handle),
			slog.String("detail", outcome.Detail),
		)
		return StatusInternalError
	}
}
