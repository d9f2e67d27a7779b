// Package auth implements the authentication core: password credentials,
// one-time email tokens, and the Google OAuth redirect flow.
//
// Failure behavior is deliberately asymmetric. Input-shape problems surface
// as field-keyed validation errors so forms can re-render; everything the
// caller should not be able to distinguish (unknown email, wrong password,
// tampered token) collapses into a small set of generic sentinel errors.
package auth
