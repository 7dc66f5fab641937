package middleware

import (
	"bytes"
	"context"
	"net/http"

	"storefront-service/database"
	"storefront-service/identity"
	"storefront-service/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLength  = 255
)

// IdempotencyStore records responses per cart and key. Reserve marks a key
// as in flight until Release.
type IdempotencyStore interface {
	Get(ctx context.Context, cartID int, key string) (*database.StoredResponse, error)
	Set(ctx context.Context, cartID int, key string, resp *database.StoredResponse) error
	Reserve(ctx context.Context, cartID int, key string) (bool, error)
	Release(ctx context.Context, cartID int, key string) error
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored 2xx response of an earlier POST carrying the
// same Idempotency-Key for the same cart. A duplicate that arrives while the
// first request is still running gets 409. Requests without the header, and
// every request when store is nil, pass through. Store errors never fail the
// request.
func Idempotency(store IdempotencyStore, defaultCartID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key too long"})
			return
		}

		ctx := c.Request.Context()
		cartID := identity.CartID(ctx, defaultCartID)

		if replay(c, store, cartID, key) {
			return
		}

		reserved, err := store.Reserve(ctx, cartID, key)
		if err != nil {
			logger.Warn(c, "Idempotency reservation failed", zap.Error(err))
		} else if !reserved {
			// The first request may have finished since the lookup.
			if replay(c, store, cartID, key) {
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Request with this Idempotency-Key is in progress"})
			return
		}
		defer func() {
			if err := store.Release(context.WithoutCancel(ctx), cartID, key); err != nil {
				logger.Warn(c, "Failed to release idempotency key", zap.Error(err))
			}
		}()

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		resp := &database.StoredResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := store.Set(context.WithoutCancel(ctx), cartID, key, resp); err != nil {
			logger.Warn(c, "Failed to store idempotent response", zap.Error(err))
		}
	}
}

// replay writes the stored response for key, if any, and aborts the chain.
func replay(c *gin.Context, store IdempotencyStore, cartID int, key string) bool {
	stored, err := store.Get(c.Request.Context(), cartID, key)
	if err != nil {
		logger.Warn(c, "Idempotency lookup failed", zap.Error(err))
	}
	if stored == nil {
		return false
	}
	c.Header(IdempotentReplayedHeader, "true")
	c.Data(stored.Status, stored.ContentType, stored.Body)
	c.Abort()
	return true
}
