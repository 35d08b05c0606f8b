// Package cli is responsible for parsing command-line arguments and flags
// and translating them into an app.Config struct.
package cli
