package chat

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/norrisng/FcomServer/config"
	"github.com/norrisng/FcomServer/internal/domain/service"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// discordSession implements service.ChatSession over the Discord gateway
// and REST API.
//
// discordgo's own auto-reconnect is disabled; the bot's supervisor owns the
// reconnect policy, so gateway drops are surfaced on Disconnected instead.
type discordSession struct {
	logger       *slog.Logger
	session      *discordgo.Session
	handler      service.DirectMessageHandler
	disconnected chan error
}

// NewDiscordSession creates a Discord-backed chat session from the bot
// credentials in config. The session is not connected until Open.
func NewDiscordSession(cfg *config.Config, logger *slog.Logger) (service.ChatSession, error) {
	dg, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Discord session")
	}

	dg.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
	dg.ShouldReconnectOnError = false

	d := &discordSession{
		logger:       logger,
		session:      dg,
		disconnected: make(chan error, 1),
	}

	dg.AddHandler(d.onMessageCreate)
	dg.AddHandler(d.onDisconnect)

	return d, nil
}

// Open establishes the gateway connection.
func (d *discordSession) Open(ctx context.Context) error {
	if err := d.session.Open(); err != nil {
		if isAuthError(err) {
			return errors.Wrapf(service.ErrAuthFailed, "discord: %v", err)
		}

		return errors.Wrap(err, "failed to open Discord gateway")
	}

	d.logger.Info("Connected to Discord",
		slog.String("user", d.session.State.User.Username),
		slog.String("userID", d.session.State.User.ID),
	)

	return nil
}

// Close tears the gateway connection down.
func (d *discordSession) Close() error {
	return errors.Wrap(d.session.Close(), "failed to close Discord session")
}

// CreateDirectChannel materializes the DM channel for a Discord user.
func (d *discordSession) CreateDirectChannel(ctx context.Context, externalID int64) (string, error) {
	channel, err := d.session.UserChannelCreate(strconv.FormatInt(externalID, 10), discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.Wrap(err, "failed to create DM channel")
	}

	return channel.ID, nil
}

// SendMessage delivers text to a channel.
func (d *discordSession) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := d.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		if isPermissionError(err) {
			return errors.Wrapf(service.ErrPermissionDenied, "discord: %v", err)
		}

		return errors.Wrap(err, "failed to send Discord message")
	}

	return nil
}

// OnDirectMessage registers the inbound DM handler. Must be called before Open.
func (d *discordSession) OnDirectMessage(handler service.DirectMessageHandler) {
	d.handler = handler
}

// Disconnected surfaces gateway drops to the reconnect supervisor.
func (d *discordSession) Disconnected() <-chan error {
	return d.disconnected
}

func (d *discordSession) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore our own messages and anything outside DMs.
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID != "" {
		return
	}
	if d.handler == nil {
		return
	}

	externalID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		d.logger.Warn("Ignoring DM with non-numeric author ID", slog.String("authorID", m.Author.ID))

		return
	}

	d.handler(context.Background(), service.DirectMessage{
		ExternalID:  externalID,
		DisplayName: m.Author.Username,
		ChannelID:   m.ChannelID,
		Content:     m.Content,
	})
}

func (d *discordSession) onDisconnect(s *discordgo.Session, ev *discordgo.Disconnect) {
	select {
	case d.disconnected <- errors.New("discord gateway connection lost"):
	default:
	}
}

// isAuthError reports whether the connection failure is a credential
// rejection (gateway close code 4004 or HTTP 401).
func isAuthError(err error) bool {
	if errors.Is(err, discordgo.ErrUnauthorized) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "authentication failed") || strings.Contains(msg, "4004")
}

// isPermissionError reports whether the send failed because the recipient
// refuses DMs (Discord error code 50007).
func isPermissionError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser
	}

	return false
}
