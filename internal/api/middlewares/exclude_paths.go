package middlewares

import "net/http"

type Middleware func(http.Handler) http.Handler

// MiddlewaresExcludePaths applies mw everywhere except the listed paths,
// which pass straight to the next handler (public endpoints).
func MiddlewaresExcludePaths(mw Middleware, paths ...string) Middleware {
	excluded := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		excluded[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := excluded[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
