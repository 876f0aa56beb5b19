// Package api serves the taskboard HTTP API.
//
// # Routes
//
// Registration, login, and the health endpoints are public. Everything else
// is mounted behind the bearer-token middleware from the auth package and
// operates on the authenticated principal's own resources only.
//
// # Responses
//
// All bodies are JSON. Errors use a single {"error": "..."} envelope. A
// resource that exists but belongs to another account is reported with the
// same 404 body as one that does not exist at all.
package api
