// Package service provides application-level services for managing users,
// activities, and monthly training statistics. Services coordinate between
// the domain layer and the store layer, and own the business rules that do
// not belong to a single entity.
package service
