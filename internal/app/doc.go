// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle (load documents,
// build graphs, flatten, render), decoupled from any specific entrypoint
// like a CLI.
package app
