// Package main provides the entry point for the Memoriam web application.
// It initializes and runs a server-rendered web service using the Fiber
// framework that lets visitors browse and search memorial tribute pages,
// leave condolence messages, and like them. A single admin role curates the
// site hero banner and removes tributes. The application uses gorm with a
// local SQLite database for persistence.
package main
