package rpc

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"
)

type contextKey int

const requestIDKey contextKey = iota

// RequestIDHeader carries the ID assigned to every request back to the
// client.
const RequestIDHeader = "X-Request-ID"

func requestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return "-"
	}
	return id
}

// addRequestMetadataMiddleware assigns an ID to every request.
func (s *Server) addRequestMetadataMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&s.requestCount, 1)
		id := uuid.New().String()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// loggingMiddleware is a middleware that writes
// logs for every request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("Request %s: %s %s from %s", requestID(r.Context()), r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// recoveryMiddleware is a middleware that recovers
// from panics, logs them, and sends an internal error
// response to the client.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recoveryErr := recover()
			if recoveryErr != nil {
				log.Criticalf("Fatal error in request %s: %+v", requestID(r.Context()), recoveryErr)
				log.Criticalf("Stack trace: %s", debug.Stack())
				rpcErr := NewRPCError(ErrCodeInternal, fmt.Sprintf("%s", recoveryErr))
				sendResponse(w, r, http.StatusInternalServerError, newErrorResponse(nil, rpcErr))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// setJSONMiddleware is a middleware that sets the content type of
// every response to be application/json.
func setJSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
