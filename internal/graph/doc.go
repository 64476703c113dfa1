// Package graph talks to a running Neo4j instance over Bolt. neoctl uses it
// to wait for a started container and to summarize what an import loaded.
package graph
