// Package store defines the persistence interfaces and shared error
// vocabulary for the application. Implementations live under
// internal/platform; services depend only on these interfaces.
package store
