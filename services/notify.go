package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// Notifier tells the site owner about a new contact message.
type Notifier interface {
	Notify(ctx context.Context, msg *models.ContactMessage) error
}

type emailSender interface {
	SendEmail(ctx context.Context, email ResendEmailRequest) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// EmailNotifier mails the message to the owner with the sender as reply-to.
type EmailNotifier struct {
	sender emailSender
	to     string
}

func NewEmailNotifier(sender emailSender, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, to: to}
}

func (n *EmailNotifier) Notify(ctx context.Context, msg *models.ContactMessage) error {
	body := fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p><strong>%s</strong></p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)
	return n.sender.SendEmail(ctx, ResendEmailRequest{
		To:      []string{n.to},
		Subject: "New contact message: " + msg.Subject,
		Html:    body,
		ReplyTo: msg.Email,
	})
}

// SMSNotifier texts a one-line summary to the owner.
type SMSNotifier struct {
	sender smsSender
	to     string
}

func NewSMSNotifier(sender smsSender, to string) *SMSNotifier {
	return &SMSNotifier{sender: sender, to: to}
}

func (n *SMSNotifier) Notify(ctx context.Context, msg *models.ContactMessage) error {
	body := fmt.Sprintf("New message from %s (%s): %s", msg.Name, msg.Email, msg.Subject)
	return n.sender.SendSMS(ctx, n.to, body)
}

// NamedNotifier labels a channel for logs and combined errors.
type NamedNotifier struct {
	Name     string
	Notifier Notifier
}

// NotifyEverywhere sends msg on every channel. A failing channel does not stop
// the others; failures come back as one combined error.
type NotifyEverywhere struct {
	channels []NamedNotifier
}

func NewNotifyEverywhere(channels ...NamedNotifier) *NotifyEverywhere {
	return &NotifyEverywhere{channels: channels}
}

func (n *NotifyEverywhere) Len() int {
	return len(n.channels)
}

func (n *NotifyEverywhere) Notify(ctx context.Context, msg *models.ContactMessage) error {
	var failures []string
	var successes []string

	for _, ch := range n.channels {
		if err := ch.Notifier.Notify(ctx, msg); err != nil {
			log.Error().Err(err).Str("channel", ch.Name).Msg("Failed to send contact notification")
			failures = append(failures, fmt.Sprintf("%s: %v", ch.Name, err))
			continue
		}
		successes = append(successes, ch.Name)
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("messageId", msg.ID.String()).Msg("Contact notification sent")
	}
	if len(failures) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(failures, "; "))
	}
	return nil
}
