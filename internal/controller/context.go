package controller

import "context"

type contextKey int

const (
	connIdCtxKey contextKey = iota
	limiterCtxKey
)

func (c controller) getConnIdFromCtx(ctx context.Context) string {
	connId, ok := ctx.Value(connIdCtxKey).(string)
	if !ok {
		return ""
	}

	return connId
}

func (c controller) getLimiterFromCtx(ctx context.Context) *inboundLimiter {
	limiter, ok := ctx.Value(limiterCtxKey).(*inboundLimiter)
	if !ok {
		return nil
	}

	return limiter
}
