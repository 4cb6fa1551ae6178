// Package schedule implements the pure scheduling logic of the assistant:
// resolving a target day to its bounds, sweeping a day's events for free
// time slots, and testing a proposed booking for conflicts with existing
// events.
//
// All functions operate on calendar.Event values and are free of I/O, which
// keeps the interval arithmetic independently testable.
package schedule
