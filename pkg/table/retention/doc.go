// Package retention removes old documents from storage.
//
// Pruning has two phases. Documents older than the retention period are
// deleted first, then the oldest remaining documents are deleted until at
// most MaxDocuments are left. A Scheduler runs the pruner on a cron
// schedule.
package retention
