// Package auth provides stateless authentication for taskboard.
//
// # Tokens
//
// Identity is carried in signed JWTs (HS256, shared secret). A token holds
// four claims: "sub" (the principal's handle), "iss" (the configured issuer),
// "iat" and "exp". Expiration is always iat + the configured lifetime, and
// timestamps are whole seconds since epoch on both the issue and verify side.
//
//	codec := auth.NewTokenCodec(secret, issuer, lifetime)
//	token, err := codec.Issue("alice")
//	handle, err := codec.ParseSubject(token)
//
// ParseSubject reports every failure mode (bad signature, expiry, wrong
// issuer, malformed token) as the single ErrInvalidToken so network callers
// cannot distinguish them. Expiry is distinguishable internally for logging.
//
// # Passwords
//
// Credentials are hashed with bcrypt (per-call salt):
//
//	hash, err := auth.HashPassword(plain)
//	ok := auth.CheckPassword(plain, hash)
//
// CheckPassword treats a malformed stored hash the same as a wrong password.
//
// # Request context
//
// The HTTP middleware validates the bearer token, re-resolves the subject
// against the user store (so deleted accounts are rejected even with a live
// token), and attaches the principal to the request context:
//
//	user := auth.MustPrincipalFromContext(r.Context())
//
// Every failure short-circuits with the same structured 401 body before any
// handler runs. The middleware is stateless and safe under arbitrary request
// concurrency.
package auth
