// Package promo sends promotional email to newsletter subscribers.
package promo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tech-up/commerce-api/internal/mailer"
	"github.com/tech-up/commerce-api/internal/model"
)

// DefaultDelay throttles outbound mail between recipients so the SMTP
// account is not flooded during a broadcast.
const DefaultDelay = 500 * time.Millisecond

// SubscriberSource lists the recipients of a broadcast.
type SubscriberSource interface {
	ListActive(ctx context.Context) ([]model.Subscription, error)
}

// Summary tallies one broadcast.
type Summary struct {
	Total    int `json:"totalSuscriptores"`
	Exitosos int `json:"exitosos"`
	Fallidos int `json:"fallidos"`
}

// Broadcaster sends a promotion to every active subscriber sequentially.
// A failure for one recipient never aborts the remaining sends; it is
// logged and counted.
type Broadcaster struct {
	Mail  mailer.Sender
	Subs  SubscriberSource
	Delay time.Duration // inter-send pause; DefaultDelay when zero
	Log   zerolog.Logger
}

// SendToAll delivers the promotion to all active subscribers and returns
// the success/failure tally. Only listing subscribers can fail the call
// as a whole; from then on errors are per-recipient.
func (b *Broadcaster) SendToAll(ctx context.Context, p mailer.Promotion) (Summary, error) {
	subs, err := b.Subs.ListActive(ctx)
	if err != nil {
		return Summary{}, err
	}

	delay := b.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	sum := Summary{Total: len(subs)}
	for i, s := range subs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := b.Mail.Send(ctx, mailer.PromotionMessage(s.Email, p)); err != nil {
			sum.Fallidos++
			b.Log.Error().Err(err).Str("email", s.Email).Msg("promotional send failed")
		} else {
			sum.Exitosos++
		}
		if i < len(subs)-1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return sum, ctx.Err()
			}
		}
	}

	b.Log.Info().Int("total", sum.Total).Int("exitosos", sum.Exitosos).
		Int("fallidos", sum.Fallidos).Str("title", p.Title).Msg("broadcast finished")
	return sum, nil
}
