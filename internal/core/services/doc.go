// Package services implements the core behaviour of the docsight client:
// the document catalog with its identifier resolution rules, the navigator
// that reconciles deep-link targets with fetched page content, and the
// query service that asks questions and normalises citations.
package services
