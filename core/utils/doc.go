// Package utils provides common utility functions shared across the
// reconciler. It holds the whitespace and case normalization helpers that
// header matching, key building and value comparison all rely on.
package utils
