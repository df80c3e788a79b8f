// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution paths for the command-line
// tools and the web server, decoupled from any specific entrypoint.
package app
