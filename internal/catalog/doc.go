// Package catalog holds the directory of streaming sites.
//
// The catalog is loaded once at startup from a TOML or CSV file, from the
// SQLite store, or from the embedded default data, then validated and kept
// in memory for the life of the process. Lookups by category, free-text
// search and the popular slice all read from that immutable copy.
package catalog
