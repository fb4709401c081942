// Package cursor implements LogEntryCursor (spec.md §4.1): a forward
// iterator across consecutive log files, materializing one file's
// entries at a time and advancing to the next file when exhausted.
package cursor
