// Package domain contains the core types of the docsight client: documents
// and chunks as the backend reports them, citations attached to generated
// answers, and the deep-link navigation targets that tie the two together.
//
// The package has no dependencies on adapters and performs no I/O. The
// citation marker resolver and the deep-link codec live here because they
// are pure functions over these types.
package domain
