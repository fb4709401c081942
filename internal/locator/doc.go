// Package locator implements WindowLocator (spec.md §4.2): the
// backward file-selection algorithm that finds the newest log file
// guaranteed to contain no in-window entries earlier than its first
// entry, so the Replayer's warm-up phase starts from the correct file
// without scanning logs that cannot contribute.
package locator
