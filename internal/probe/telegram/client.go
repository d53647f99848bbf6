package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/botpinghq/botping/internal/probe"
)

const (
	probeText          = "/start"
	defaultReplyWindow = 2 * time.Second
	sendMaxRetries     = 3
)

// Client probes bot accounts over the Telegram Bot API: it registers a
// pending probe, messages the bot, waits out the reply window, and reports
// whether the bot answered. Replies are observed by Run, which must be
// polling on the same registry for probes to ever come back alive.
type Client struct {
	logger      *slog.Logger
	api         *tgbotapi.BotAPI
	registry    *Registry
	replyWindow time.Duration
	retryBase   time.Duration
	send        func(msg tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewClient authenticates against the given Bot API endpoint. The endpoint
// must be Bot-API compatible but is typically a gateway fronting a user
// session, since bots cannot see each other's messages on the stock API.
func NewClient(log *slog.Logger, token, endpoint string, replyWindow time.Duration, registry *Registry) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("adapter", "telegram"))
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if replyWindow <= 0 {
		replyWindow = defaultReplyWindow
	}
	if registry == nil {
		registry = NewRegistry(0)
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		log.Error("create bot failed", slog.Any("error", err))
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	_ = tgbotapi.SetLogger(&slogBotLogger{log: log})
	c := &Client{
		logger:      log,
		api:         api,
		registry:    registry,
		replyWindow: replyWindow,
		retryBase:   time.Second,
	}
	c.send = func(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
		return api.Send(msg)
	}
	return c, nil
}

// Probe messages the handle and waits the full reply window before checking
// the registry. Exactly one send is attempted per call, retried only on
// Telegram rate limiting.
func (c *Client) Probe(ctx context.Context, handle string) probe.Outcome {
	name := normalizeHandle(handle)
	if name == "" {
		return probe.Errorf("empty bot handle")
	}
	c.registry.Add(name)
	if err := c.sendProbe(ctx, name); err != nil {
		c.logger.Error("send probe failed", slog.String("bot", name), slog.Any("error", err))
		return probe.Errorf("send probe: %v", err)
	}
	select {
	case <-ctx.Done():
		return probe.Errorf("probe interrupted: %v", ctx.Err())
	case <-time.After(c.replyWindow):
	}
	if c.registry.Responded(name) {
		return probe.Outcome{Status: probe.StatusAlive}
	}
	return probe.Outcome{Status: probe.StatusDead}
}

func (c *Client) sendProbe(ctx context.Context, name string) error {
	msg := tgbotapi.NewMessageToChannel("@"+name, probeText)
	var lastErr error
	for attempt := range sendMaxRetries {
		_, err := c.send(msg)
		if err == nil {
			return nil
		}
		if !isTelegramTooManyRequests(err) {
			return err
		}
		lastErr = err
		d := getTelegramRetryAfter(err)
		if d <= 0 {
			d = time.Duration(attempt+1) * c.retryBase
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return lastErr
}

// Run long-polls for updates, marking each sender as a reply to any pending
// probe, and sweeps expired registry entries on the TTL cadence. It blocks
// until ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	c.logger.Info("start", slog.String("bot", c.api.Self.UserName))
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := c.api.GetUpdatesChan(updateConfig)
	ticker := time.NewTicker(c.registry.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stop")
			c.api.StopReceivingUpdates()
			// Drain remaining updates so the library's polling goroutine can
			// finish writing and exit. Without this, the in-flight long-poll
			// HTTP request keeps the old getUpdates session alive, causing
			// "Conflict: terminated by other getUpdates request" when a new
			// connection starts with the same bot token.
			for range updates {
			}
			return
		case update, ok := <-updates:
			if !ok {
				c.logger.Info("updates channel closed")
				return
			}
			sender := senderHandle(update)
			if sender == "" {
				continue
			}
			c.registry.MarkResponded(sender)
		case <-ticker.C:
			c.registry.Sweep()
		}
	}
}

func senderHandle(update tgbotapi.Update) string {
	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil || msg.From == nil {
		return ""
	}
	return strings.TrimSpace(msg.From.UserName)
}

func isTelegramTooManyRequests(err error) bool {
	if err == nil {
		return false
	}
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	return false
}

func getTelegramRetryAfter(err error) time.Duration {
	if err == nil {
		return 0
	}
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return 0
}

type slogBotLogger struct {
	log *slog.Logger
}

func (l *slogBotLogger) Println(v ...any) {
	l.log.Debug(fmt.Sprint(v...))
}

func (l *slogBotLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
