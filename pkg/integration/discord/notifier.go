package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Notifier sends reminder notifications to a Discord channel.
type Notifier struct {
	Session   *discordgo.Session
	ChannelID string
}

// NewNotifier creates a new Discord notifier and opens the session.
func NewNotifier(token, channelID string) (*Notifier, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening Discord session: %w", err)
	}

	return &Notifier{
		Session:   dg,
		ChannelID: channelID,
	}, nil
}

// Name identifies the notifier channel.
func (n *Notifier) Name() string { return "discord" }

// Notify sends one notification message to the configured channel.
func (n *Notifier) Notify(title, body string) error {
	if n.ChannelID == "" {
		return fmt.Errorf("no channel configured")
	}
	_, err := n.Session.ChannelMessageSend(n.ChannelID, fmt.Sprintf("🔔 **%s**\n%s", title, body))
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Close closes the session.
func (n *Notifier) Close() error {
	return n.Session.Close()
}
