// Package driving defines the inbound ports of the docsight core: the
// interfaces the CLI and TUI adapters call to ask questions and navigate
// documents.
package driving
