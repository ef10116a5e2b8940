package controller

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func (c controller) generateTimeBasedId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// inboundLimiter is used only by the reading goroutine of one connection.
type inboundLimiter struct {
	limiter *rate.Limiter
	dropped int
}

// newLimiter returns nil when inbound messages are not limited.
func (c controller) newLimiter() *inboundLimiter {
	if c.messagesPerSecond <= 0 {
		return nil
	}

	return &inboundLimiter{
		limiter: rate.NewLimiter(rate.Limit(c.messagesPerSecond), c.messagesPerSecond),
	}
}
