package services

import (
	"context"
	"strings"

	"laundrypro-backend/config"

	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers a text message to a phone number.
type Notifier interface {
	Send(ctx context.Context, to string, body string) error
}

// NewNotifier builds the notifier selected by cfg.Kind.
func NewNotifier(cfg config.NotifierConfig, logger *zap.Logger) (Notifier, error) {
	switch cfg.Kind {
	case config.NotifierLog:
		return NewLogNotifier(logger), nil
	case config.NotifierTwilio:
		return NewTwilioNotifier(cfg, logger), nil
	default:
		return nil, errors.Errorf("unknown notifier %q", cfg.Kind)
	}
}

// LogNotifier only logs the message. It is the default until an SMS
// provider is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to string, body string) error {
	n.logger.Info("sms (log only)", zap.String("to", to), zap.String("body", body))
	return nil
}

type TwilioNotifier struct {
	client   *twilio.RestClient
	from     string
	whatsApp string
	logger   *zap.Logger
}

func NewTwilioNotifier(cfg config.NotifierConfig, logger *zap.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from:     cfg.FromNumber,
		whatsApp: cfg.WhatsAppNumber,
		logger:   logger,
	}
}

func (n *TwilioNotifier) Send(_ context.Context, to string, body string) error {
	from, dest, channel := n.addresses(to)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(dest)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return errors.Wrapf(err, "twilio %s to %s", channel, to)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	n.logger.Info("message sent", zap.String("channel", channel), zap.String("to", to), zap.String("sid", sid))
	return nil
}

// addresses picks WhatsApp for E.164 numbers when a WhatsApp sender is
// configured, plain SMS otherwise.
func (n *TwilioNotifier) addresses(to string) (from, dest, channel string) {
	if n.whatsApp != "" && strings.HasPrefix(to, "+") {
		return "whatsapp:" + n.whatsApp, "whatsapp:" + to, "whatsapp"
	}
	return n.from, to, "sms"
}
