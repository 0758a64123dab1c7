package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client sends transactional email through Resend. SMS is logged only:
// no SMS provider is wired yet, and bookings must never depend on one.
//
// All sends are best-effort. A failed notification is logged and reported
// to the caller, but the caller is expected to treat it as non-fatal: the
// appointment is already committed by the time a notification goes out.
type Client struct {
	emails       *resend.Client
	enabled      bool
	fromAddress  string
	practiceName string
	log          Logger
}

func NewClient(apiKey, fromAddress, practiceName string, enabled bool, log Logger) *Client {
	var emails *resend.Client
	if enabled {
		emails = resend.NewClient(apiKey)
	}

	return &Client{
		emails:       emails,
		enabled:      enabled,
		fromAddress:  fromAddress,
		practiceName: practiceName,
		log:          log,
	}
}

// SendBookingConfirmation emails the patient their appointment details and
// logs the SMS that would be sent.
func (c *Client) SendBookingConfirmation(ctx context.Context, n BookingNotification) error {
	c.logSMS(n.PatientPhone, fmt.Sprintf(
		"%s: votre rendez-vous du %s à %s est confirmé. Référence: %s",
		c.practiceName, formatDateFR(n.Date), n.StartTime, n.PublicRef))

	if !c.enabled {
		c.log.Info("SendBookingConfirmation: notifications disabled, skipping email for ref=%s", n.PublicRef)
		return ErrDisabled
	}

	reason := ""
	if n.Reason != nil && *n.Reason != "" {
		reason = fmt.Sprintf("<p><strong>Motif :</strong> %s</p>", *n.Reason)
	}

	html := fmt.Sprintf(`
		<h2>Votre rendez-vous est confirmé</h2>
		<p>Bonjour %s,</p>
		<p>Votre rendez-vous avec %s est confirmé :</p>
		<p><strong>Date :</strong> %s<br>
		<strong>Heure :</strong> %s - %s</p>
		%s
		<p>Référence : <strong>%s</strong></p>
		<p>Conservez cette référence, elle vous sera demandée pour toute annulation.</p>`,
		n.PatientName, c.practiceName,
		formatDateFR(n.Date), n.StartTime, n.EndTime,
		reason, n.PublicRef)

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{n.PatientEmail},
		Subject: fmt.Sprintf("Confirmation de rendez-vous - %s", formatDateFR(n.Date)),
		Html:    html,
	}

	sent, err := c.emails.Emails.SendWithContext(ctx, params)
	if err != nil {
		c.log.Error("SendBookingConfirmation: email send failed for ref=%s: %v", n.PublicRef, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("SendBookingConfirmation: email sent id=%s ref=%s", sent.Id, n.PublicRef)
	return nil
}

// SendCancellationNotice emails the patient that their appointment was
// cancelled.
func (c *Client) SendCancellationNotice(ctx context.Context, n CancellationNotification) error {
	if !c.enabled {
		c.log.Info("SendCancellationNotice: notifications disabled, skipping email for ref=%s", n.PublicRef)
		return ErrDisabled
	}

	html := fmt.Sprintf(`
		<h2>Votre rendez-vous a été annulé</h2>
		<p>Bonjour %s,</p>
		<p>Votre rendez-vous du %s à %s a été annulé.</p>
		<p><strong>Motif :</strong> %s</p>
		<p>Vous pouvez reprendre rendez-vous à tout moment.</p>`,
		n.PatientName, formatDateFR(n.Date), n.StartTime, n.Reason)

	params := &resend.SendEmailRequest{
		From:    c.fromAddress,
		To:      []string{n.PatientEmail},
		Subject: fmt.Sprintf("Annulation de rendez-vous - %s", formatDateFR(n.Date)),
		Html:    html,
	}

	sent, err := c.emails.Emails.SendWithContext(ctx, params)
	if err != nil {
		c.log.Error("SendCancellationNotice: email send failed for ref=%s: %v", n.PublicRef, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("SendCancellationNotice: email sent id=%s ref=%s", sent.Id, n.PublicRef)
	return nil
}

func (c *Client) logSMS(phone, message string) {
	c.log.Info("SMS (not sent, no provider configured) to=%s: %s", phone, message)
}

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func formatDateFR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frMonths[t.Month()-1], t.Year())
}
