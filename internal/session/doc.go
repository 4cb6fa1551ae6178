// Package session holds conversation state: the message transcript of each
// chat session and a manager that creates sessions lazily and expires idle
// ones.
//
// A Session is an explicit object passed into the orchestrator rather than
// process-global history; its lock serializes whole chat turns so that
// concurrent requests against the same conversation cannot interleave.
package session
