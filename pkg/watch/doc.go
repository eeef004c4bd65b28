// Package watch re-runs a callback when input files change.
//
// A Watcher observes files and directories with fsnotify. Single files are
// watched through their parent directory so that editors which replace a
// file on save keep triggering events. Bursts of events are collapsed by a
// Debouncer into one callback after a quiet period.
package watch
