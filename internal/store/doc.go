// Package store defines the persistence interfaces of the application.
// Implementations live under internal/platform; services depend only on
// these interfaces so storage can be swapped or mocked in tests.
package store
