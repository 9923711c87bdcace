package middleware

import (
	"context"
	"net/http"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/token"
)

type payloadContextKey struct{}

// PayloadFromContext returns the decoded credential payload injected by
// [Protect] for an authenticated request.
func PayloadFromContext(ctx context.Context) (*token.Payload, bool) {
	p, ok := ctx.Value(payloadContextKey{}).(*token.Payload)
	return p, ok
}

// Protect gates a handler behind the guard. The credential travels in a
// cookie named after the guard's storage key; a failing evaluation expires
// the cookie and answers 303 to the login path, so the protected handler
// never runs for an unauthenticated request.
func Protect(g *goGate.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if g == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			store := &cookieStore{r: r, w: w}
			nav := &redirectNavigator{r: r, w: w}

			res := g.EvaluateWith(r.Context(), store, nav)
			if res.State != goGate.StateAuthenticated {
				// The navigator has already written the redirect.
				return
			}

			ctx := context.WithValue(r.Context(), payloadContextKey{}, res.Payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// cookieStore adapts one request's cookie jar to the goGate.Store contract.
// Get reads the named cookie; Remove queues an expiring Set-Cookie on the
// response so the browser forgets the credential.
type cookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

func (s *cookieStore) Get(_ context.Context, key string) (string, bool, error) {
	c, err := s.r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (s *cookieStore) Set(_ context.Context, key, value string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *cookieStore) Remove(_ context.Context, key string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// redirectNavigator answers Replace with a 303. See Other forces the
// browser to re-request the login path with GET regardless of the original
// method, matching history-replacing client navigation.
type redirectNavigator struct {
	r *http.Request
	w http.ResponseWriter
}

func (n *redirectNavigator) Replace(path string) {
	n.w.Header().Set("Cache-Control", "no-store")
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}
