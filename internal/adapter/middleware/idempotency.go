package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// How long the "in-progress" lock holds before the handler must finish.
	lockTTL = 60 * time.Second
	// Allowed client/server clock skew for Ax-Request-At (in UTC).
	maxClockSkew = 10 * time.Minute
)

type idemRecord struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// captureWriter tees the response body so a finished request can be
// replayed byte for byte on a duplicate submission.
type captureWriter struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *captureWriter) Header() http.Header { return r.w.Header() }
func (r *captureWriter) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *captureWriter) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// checkIdemHeaders validates Ax-Request-Id and Ax-Request-At. A non-empty
// message means the request must be rejected with 400.
func checkIdemHeaders(req *http.Request) (reqID string, reqAt time.Time, msg string) {
	reqID = strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
	if reqID == "" {
		return "", time.Time{}, "missing Ax-Request-Id"
	}
	if !validReqID(reqID) {
		return "", time.Time{}, "invalid Ax-Request-Id format"
	}
	reqAt, err := parseAxRequestAt(req.Header.Get("Ax-Request-At"))
	if err != nil {
		return "", time.Time{}, err.Error()
	}
	now := nowUTC()
	if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
		return "", time.Time{}, "Ax-Request-At too skewed"
	}
	return reqID, reqAt, ""
}

// IdempotencyMiddleware guards mutating endpoints with a redis-backed
// request-id protocol. The storage key spans method, route, tenant, actor,
// and request id, so a request id only collides with the same caller
// retrying the same operation. Must run after IdentityMiddleware.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID, reqAt, msg := checkIdemHeaders(req)
			if msg != "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
			}

			a, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing actor identity"})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), a.TenantID, a.ID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			locked, err := lockProvisional(ctx, rdb, key, idemRecord{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !locked {
				return replayOrConflict(c, ctx, rdb, key, bhash)
			}

			rec := &captureWriter{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			_ = storeFinal(context.Background(), rdb, key, idemRecord{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl)
			return nil
		}
	}
}

// replayOrConflict handles a duplicate request id: serve the stored final
// response when the original finished with the same body, otherwise report
// the collision.
func replayOrConflict(c echo.Context, ctx context.Context, rdb *redis.Client, key, bhash string) error {
	cur, err := fetchRecord(ctx, rdb, key)
	if err != nil {
		log.Printf("idempotency: load %s failed: %v", key, err)
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
	}
	if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
}
