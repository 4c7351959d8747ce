// Package driven defines the outbound ports of the docsight core: the
// backend HTTP contract, local storage, and configuration. Adapters under
// internal/adapters/driven implement these interfaces.
package driven
