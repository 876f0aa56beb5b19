// Package service implements taskboard's business operations on top of the
// store: registration and login, self-service account management, and
// owner-scoped project and task CRUD.
//
// Every resource operation takes the authenticated principal's ID as an
// explicit parameter. Each one loads the target resource first and asserts
// ownership before any further logic; a resource owned by someone else is
// reported as ErrNotFound, indistinguishable from a resource that does not
// exist. The same policy covers cross-references: creating or updating a task
// against a project the principal does not own fails with ErrNotFound before
// any write happens.
//
// Login failures are deliberately lossy: an unknown handle and a wrong
// password both return the identical ErrInvalidCredentials, and the unknown
// handle path still performs a bcrypt comparison against a dummy hash so the
// two cases cost the same.
package service
