// Package domain defines the core business entities and errors for the
// Stride API: users, logged activities, the monthly activity statistics
// consumed by the motivational-message service, and the generated
// motivational messages themselves.
package domain
