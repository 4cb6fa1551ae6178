// Package assistant contains the conversation orchestrator. Each chat turn
// alternates between asking the model for the next step and executing the
// tool it requested, bounded by a fixed cycle budget. Tool failures are
// returned to the model as results rather than aborting the turn, so the
// model can explain the problem to the user.
package assistant
