// Package logging provides the structured logging interface of the int2048
// calculator. Front ends log through Logger; zerolog is the backend, and
// components that take a zerolog.Logger directly get it from Zerolog.
package logging
