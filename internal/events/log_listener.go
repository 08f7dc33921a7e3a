package events

import (
	"context"
	"time"

	"github.com/fitnease/tracking/internal/progression"

	log "github.com/sirupsen/logrus"
)

// LogListener writes one log line per promotion.
type LogListener struct{}

var _ progression.PromotionListener = LogListener{}

func (LogListener) OnPromotion(_ context.Context, event progression.PromotionEvent) error {
	log.WithFields(log.Fields{
		"event_id":    event.ID,
		"user_id":     event.UserID,
		"from_level":  event.FromLevel,
		"to_level":    event.ToLevel,
		"score":       event.Score,
		"trigger":     event.Trigger,
		"promoted_at": event.PromotedAt.Format(time.RFC3339),
	}).Info("user promoted")
	return nil
}
