// Package calendar provides a client for interacting with the Google
// Calendar API.
//
// The client is scoped to a single calendar and a single timezone. It
// exposes the two operations the scheduling assistant needs: listing
// upcoming events ordered by start time, and inserting a new event. Events
// are converted into a provider-neutral form that preserves the distinction
// between precise date-times and date-only (all-day) bounds, which the slot
// analysis and conflict detection code depends on.
//
// Authentication uses a Google service account key, so the assistant can
// run unattended without an interactive OAuth flow.
package calendar
