// Package store provides persistent storage for taskboard using SQLite.
//
// # Data Models
//
//   - User: account identity with unique handle and email, bcrypt password hash
//   - Project: named task group owned by exactly one user (name unique per owner)
//   - Task: unit of work owned by one user, optionally assigned to a project
//
// Ownership columns (owner_id) are written once at creation and never appear
// in any UPDATE statement; resources are not reassignable between owners.
//
// # Integrity
//
// Uniqueness of handles, emails, and per-owner project names is enforced by
// UNIQUE constraints in the schema. These constraints, not the service-level
// pre-checks, are the authoritative guard under concurrent writes; violations
// surface as the ErrDuplicate* sentinels.
//
// Cascading deletes (user → projects + tasks, project → its tasks) run inside
// a single transaction so a crash mid-cascade cannot orphan rows.
//
// SQLiteStore implements the Store interface and is created with
// NewSQLiteStore(path); the schema is created on open and WAL mode is enabled.
package store
