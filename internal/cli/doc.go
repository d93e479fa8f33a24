// Package cli turns moviegraph's command line into an app.Config: the graph
// documents to load, the root graph, the shot/frame traversal inputs, -var
// overrides and output options. Errors carry the process exit code.
package cli
