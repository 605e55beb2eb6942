package httpx

import (
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/observability/metrics"
	"github.com/campushub/intranet-api/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics returns a middleware that emits request count and latency metrics
// through the given sink. A nil sink yields a pass-through middleware.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			metrics.EmitHTTPRequest(sink, metrics.HTTPRequest{
				Method:   r.Method,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires a fully authenticated session.
// A caller who passed the password check but not the code check gets
// 401 mfa_required; everyone else without a live session gets 401.
func RequireAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, pending := resolveSession(r, authSvc)
			if pending {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "mfa_required",
					Err:     errors.New("complete the verification code step first"),
				})
				return
			}
			if session == nil {
				writeAuthRequired(w)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires one of the given roles.
// Roles are flat; an admin does not implicitly hold teacher routes and
// must be listed where intended.
func RequireRole(authSvc AuthServiceInterface, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, pending := resolveSession(r, authSvc)
			if pending {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "mfa_required",
					Err:     errors.New("complete the verification code step first"),
				})
				return
			}
			if session == nil {
				writeAuthRequired(w)
				return
			}

			if !roleAllowed(session.Role, roles) {
				writeForbidden(w)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission returns a middleware gating on the static role/permission table.
func RequirePermission(authSvc AuthServiceInterface, perm domainauth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := resolveSession(r, authSvc)
			if session == nil {
				writeAuthRequired(w)
				return
			}

			if !domainauth.HasPermission(session.Role, perm) {
				writeForbidden(w)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveSession loads and validates the session named by the request cookie.
// Returns (session, false) for a live authenticated session, (nil, true)
// when a pending session exists, and (nil, false) otherwise. A session that
// carries a user without completed MFA is destroyed on sight so the client
// drops back to anonymous instead of looping on a dead cookie.
func resolveSession(r *http.Request, authSvc AuthServiceInterface) (*domainauth.Session, bool) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil, false
	}

	session, err := authSvc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil, false
	}

	if session.IsPending() {
		return nil, true
	}
	if session.IsStuck() {
		if invErr := authSvc.InvalidateSession(r.Context(), session.ID, RequestMetaFrom(r)); invErr != nil {
			slog.Default().WarnContext(r.Context(), "invalidating broken session failed", "error", invErr)
		}
		return nil, false
	}
	if !session.IsAuthenticated() {
		return nil, false
	}

	return session, false
}

func roleAllowed(have domainauth.Role, want []domainauth.Role) bool {
	for _, role := range want {
		if have == role {
			return true
		}
	}
	return false
}

func writeAuthRequired(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

func writeForbidden(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "insufficient_permissions",
		Err:     errors.New("insufficient permissions"),
	})
}

// gzipPool reuses gzip writers across requests at the default level.
//
//nolint:gochecknoglobals // writer pool shared across requests
var gzipPool = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

// Compression returns a middleware that gzips JSON responses when the
// client advertises support. Other content types pass through untouched.
func Compression() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			gzw := &gzipResponseWriter{ResponseWriter: w}
			next.ServeHTTP(gzw, r)
			gzw.close()
		})
	}
}

// gzipResponseWriter defers the compress-or-not decision to WriteHeader,
// when the final Content-Type is known.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz            *gzip.Writer
	headerWritten bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	ct := w.Header().Get("Content-Type")
	compressible := strings.HasPrefix(ct, "application/json") || strings.HasPrefix(ct, "text/")
	if status >= http.StatusOK && status != http.StatusNoContent && status != http.StatusNotModified &&
		compressible && w.Header().Get("Content-Encoding") == "" {
		gz, ok := gzipPool.Get().(*gzip.Writer)
		if ok {
			gz.Reset(w.ResponseWriter)
			w.gz = gz
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Del("Content-Length")
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	if err := w.gz.Close(); err != nil {
		slog.Default().Warn("closing gzip writer failed", "error", err)
	}
	w.gz.Reset(io.Discard)
	gzipPool.Put(w.gz)
	w.gz = nil
}
