package telegram

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mklimuk/sales-pilot/pkg/reminders"
)

// Engine is the slice of the reminder engine the bot drives.
type Engine interface {
	Active() reminders.ActiveState
	DismissMeeting(id string)
	DismissNote(id string)
	DismissLogout()
}

// Bot wraps the Telegram bot API. It doubles as a system notifier (one
// message per surfaced reminder) and a dismiss surface via commands.
type Bot struct {
	API    *tgbotapi.BotAPI
	ChatID int64
	Engine Engine
	stopCh chan struct{}
}

// NewBot creates a new Telegram bot
func NewBot(token string, chatID int64, engine Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}

	return &Bot{
		API:    api,
		ChatID: chatID,
		Engine: engine,
		stopCh: make(chan struct{}),
	}, nil
}

// Name identifies the notifier channel.
func (b *Bot) Name() string { return "telegram" }

// Notify sends one notification message to the configured chat.
func (b *Bot) Notify(title, body string) error {
	if b.ChatID == 0 {
		return fmt.Errorf("no chat configured")
	}
	msg := tgbotapi.NewMessage(b.ChatID, fmt.Sprintf("🔔 %s\n%s", title, body))
	if _, err := b.API.Send(msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Start begins polling for updates in a goroutine
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.API.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-b.stopCh:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil {
					b.handleMessage(update.Message)
				}
			}
		}
	}()

	return nil
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	close(b.stopCh)
	b.API.StopReceivingUpdates()
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	cmd, args := ParseCommand(msg.Text)
	switch cmd {
	case "/active":
		b.reply(msg, FormatActive(b.Engine.Active()))
	case "/dismiss":
		b.handleDismiss(msg, args)
	case "/status":
		b.reply(msg, "Sales Pilot is online. Reminders are being watched.")
	}
}

func (b *Bot) handleDismiss(msg *tgbotapi.Message, args string) {
	track, id := SplitDismissArgs(args)
	switch track {
	case "meeting":
		if id == "" {
			b.reply(msg, "Usage: /dismiss meeting <id>")
			return
		}
		b.Engine.DismissMeeting(id)
		b.reply(msg, "Meeting reminder dismissed for today.")
	case "note":
		if id == "" {
			b.reply(msg, "Usage: /dismiss note <id>")
			return
		}
		b.Engine.DismissNote(id)
		b.reply(msg, "Note reminder dismissed for today.")
	case "logout":
		b.Engine.DismissLogout()
		b.reply(msg, "Logout reminder acknowledged.")
	default:
		b.reply(msg, "Usage: /dismiss meeting|note|logout [id]")
	}
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	if _, err := b.API.Send(reply); err != nil {
		log.Printf("Failed to send Telegram reply: %v", err)
	}
}

// ParseCommand extracts the command and its arguments from a message text.
// Returns the command (e.g. "/active", "/dismiss") and the remainder.
func ParseCommand(text string) (command, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	parts := strings.SplitN(text, " ", 2)
	switch parts[0] {
	case "/active", "/dismiss", "/status":
		if len(parts) == 2 {
			return parts[0], strings.TrimSpace(parts[1])
		}
		return parts[0], ""
	}
	return "", text
}

// SplitDismissArgs splits "/dismiss" arguments into track and id.
func SplitDismissArgs(args string) (track, id string) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	track = parts[0]
	if len(parts) == 2 {
		id = strings.TrimSpace(parts[1])
	}
	return track, id
}

// FormatActive renders the active reminder slots as a chat message.
func FormatActive(state reminders.ActiveState) string {
	var lines []string
	if state.Meeting != nil {
		lines = append(lines, fmt.Sprintf("Meeting: %s (%s), id %s",
			state.Meeting.Title,
			state.Meeting.TriggerTime.Format("15:04"),
			state.Meeting.ID))
	}
	if state.Note != nil {
		lines = append(lines, fmt.Sprintf("Note: %s, id %s",
			state.Note.ActivityType,
			state.Note.ID))
	}
	if state.Logout {
		lines = append(lines, "Logout reminder is waiting for acknowledgment.")
	}
	if len(lines) == 0 {
		return "No active reminders."
	}
	return strings.Join(lines, "\n")
}
