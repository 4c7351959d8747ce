// Package api implements the HTTP client for the document question
// answering backend.
package api
