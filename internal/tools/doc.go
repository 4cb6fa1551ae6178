// Package tools exposes the assistant's callable actions as a fixed,
// schema-described registry.
//
// The two scheduling tools, check_availability and book_meeting, wrap the
// slot analysis, conflict detection, and calendar gateway. Tool handlers are
// strictly fail-soft: parse failures, booking conflicts, and provider errors
// all come back as distinct user-facing strings, never as errors or panics,
// so the conversation loop always has something to feed back to the model.
package tools
