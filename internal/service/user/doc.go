// Package user implements the user directory's business logic.
//
// The service layer owns the email-uniqueness rule and the orchestration
// between persistence and notification. It depends on the Repository and
// Notifier interfaces defined in this package and should never import
// from api/ or repository/ implementations.
//
// Repository implementations live in repository/postgres/, repository/memory/,
// and repository/rediscache/. Notifier implementations live in notify/.
package user
