package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/sync/errgroup"

	"moments/internal/models/response_models"
	"moments/pkg/utils"
)

const ChannelSMS = "sms"

type SMSServiceInterface interface {
	Notifier
	SendActivitySMS(ctx context.Context, activity response_models.ActivityResponse) (*SMSResult, error)
}

type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Recipients []string
	// Timeout bounds each Twilio HTTP call. The SDK takes no context, so
	// this is what stops a hung request once the caller has given up.
	Timeout time.Duration
}

func (c SMSConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type SMSResult struct {
	Recipients int
	MessageIDs []string
}

// messageSender is the slice of the Twilio API the service needs.
type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type SMSService struct {
	cfg    SMSConfig
	sender messageSender
}

func NewSMSService(cfg SMSConfig) SMSServiceInterface {
	s := &SMSService{cfg: cfg}
	if cfg.Enabled() {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		if cfg.Timeout > 0 {
			client.SetTimeout(cfg.Timeout)
		}
		s.sender = client.Api
	}
	return s
}

func newSMSServiceWithSender(cfg SMSConfig, sender messageSender) *SMSService {
	return &SMSService{cfg: cfg, sender: sender}
}

func (s *SMSService) Channel() string { return ChannelSMS }

func (s *SMSService) Notify(ctx context.Context, activity response_models.ActivityResponse) (string, error) {
	res, err := s.SendActivitySMS(ctx, activity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SMS sent to %d recipients (%s)", res.Recipients, strings.Join(res.MessageIDs, ",")), nil
}

// SendActivitySMS texts every recipient concurrently. Any single failure
// fails the whole send; messages already accepted are not recalled.
// Cancelling ctx returns at once, but a request already sent to Twilio runs
// on until SMSConfig.Timeout and may still deliver.
func (s *SMSService) SendActivitySMS(ctx context.Context, activity response_models.ActivityResponse) (*SMSResult, error) {
	if !s.cfg.Enabled() || s.sender == nil {
		return nil, utils.ErrChannelDisabled
	}

	body := ActivitySMSBody(activity)
	ids := make([]string, len(s.cfg.Recipients))

	g, ctx := errgroup.WithContext(ctx)
	for i, to := range s.cfg.Recipients {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			params := &twilioApi.CreateMessageParams{}
			params.SetTo(to)
			params.SetFrom(s.cfg.FromNumber)
			params.SetBody(body)

			msg, err := s.createMessage(ctx, params)
			if err != nil {
				return fmt.Errorf("sms to %s: %w", to, err)
			}
			if msg != nil && msg.Sid != nil {
				ids[i] = *msg.Sid
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SMSResult{Recipients: len(s.cfg.Recipients), MessageIDs: ids}, nil
}

type createResult struct {
	msg *twilioApi.ApiV2010Message
	err error
}

func (s *SMSService) createMessage(ctx context.Context, params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	done := make(chan createResult, 1)
	go func() {
		msg, err := s.sender.CreateMessage(params)
		done <- createResult{msg: msg, err: err}
	}()

	select {
	case res := <-done:
		return res.msg, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ActivitySMSBody is the text message announcing a new activity.
func ActivitySMSBody(activity response_models.ActivityResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌟 New Activity: %s\n", activity.Title)
	if activity.Date != "" {
		fmt.Fprintf(&b, "📅 %s\n", activity.Date)
	}
	fmt.Fprintf(&b, "⭐ Ayoub %d/10 · Medina %d/10\n", activity.AyoubRating, activity.MedinaRating)
	if activity.Address != "" {
		fmt.Fprintf(&b, "📍 %s\n", activity.Address)
	}
	b.WriteString("\nMoments App ✨")
	return b.String()
}
