// Command streamlinks queries the streaming-site directory from a terminal.
//
// It loads the same catalog and metadata provider as the API server and
// prints results as tables, or as JSON with --json. The export command
// writes the loaded catalog back out as TOML or CSV.
package main
