// Package period implements PeriodTracker (spec.md §4.6): a
// name→active(0/1) map updated by TIMEPERIOD TRANSITION log entries,
// consulted by internal/transition to seed and update
// in_notification_period / in_service_period on each ObjectState.
package period
