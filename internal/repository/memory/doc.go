// Package memory provides process-local implementations of the repository
// interfaces. The service falls back to them when no PostgreSQL DSN is
// configured, and the HTTP and service tests run against them.
package memory
