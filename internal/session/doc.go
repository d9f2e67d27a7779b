// Package session provides cookie-bound server-side sessions.
//
// The browser holds only an opaque 256-bit random token in an HttpOnly
// cookie; all session state lives server-side behind the Store interface.
// Login rotates the token, logout destroys the session, and expiry is the
// sooner of the idle timeout and the absolute max lifetime.
package session
