// Package domain contains the core entities of the spaced repetition system
// and their validation rules. Types in this package carry no persistence or
// transport concerns; stores and handlers depend on domain, never the reverse.
package domain
