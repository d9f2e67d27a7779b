package session

import "net/http"

// Middleware attaches the request's session to the context when one exists.
// Requests without a valid session pass through untouched.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		m.touchActivity(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAuth redirects unauthenticated requests to the login page.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Get(r.Context(), r)
		if err != nil || !session.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		m.touchActivity(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}
