// Package timeparse resolves natural-language time expressions against a
// reference instant and a fixed timezone.
package timeparse
