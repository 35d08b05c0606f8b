// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the conversion lifecycle from a pipeline
// file to diagram artifacts, decoupled from any specific entrypoint like a
// CLI.
package app
