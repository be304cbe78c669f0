package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kamepallinandini997/leave-management-poc/internal/shared/apperror"
	"github.com/kamepallinandini997/leave-management-poc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	IdempotencyTTL     = 24 * time.Hour
	IdempotencyLockTTL = 30 * time.Second
)

var ErrRequestInProgress = apperror.New(
	"PROCESSING",
	"A request with this Idempotency-Key is still being processed",
	http.StatusConflict,
)

// CachedResponse is what gets stored under an idempotency key.
type CachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func IdempotencyCacheKey(path, key string) string {
	return fmt.Sprintf("idemp:%s:%s", path, key)
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a POST that carried the same
// Idempotency-Key, and rejects a second request while the first is still
// running. With a nil client it does nothing. Redis errors let the request
// through.
func Idempotency(rdb *redis.Client, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := IdempotencyCacheKey(c.FullPath(), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var cached CachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				l.Debug("idempotent replay", zap.String("key", cacheKey), zap.Int("status", cached.Status))
				c.Header(ReplayedHeader, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", []byte(cached.Body))
				c.Abort()
				return
			}
			l.Warn("idempotency cache entry unreadable", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			l.Warn("idempotency lookup failed", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", IdempotencyLockTTL).Result()
		if err != nil {
			l.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Abort(c, ErrRequestInProgress.HTTPStatus, ErrRequestInProgress.Code, ErrRequestInProgress.Message)
			return
		}

		w := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusInternalServerError {
			payload, _ := json.Marshal(CachedResponse{Status: status, Body: w.body.String()})
			if err := rdb.Set(ctx, cacheKey, string(payload), IdempotencyTTL).Err(); err != nil {
				l.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			l.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}
