package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
	"mercator-hq/tabula/pkg/telemetry/metrics"
	"mercator-hq/tabula/pkg/telemetry/tracing"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep documents.
	// 0 keeps documents forever.
	RetentionDays int

	// MaxDocuments is the maximum number of documents to keep.
	// 0 means unlimited.
	MaxDocuments int64

	// Schedule is a standard cron expression, e.g. "0 3 * * *".
	Schedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: config.DefaultRetentionDays,
		Schedule:      config.DefaultRetentionSchedule,
	}
}

// FromConfig converts the retention section of the application config.
func FromConfig(cfg config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		MaxDocuments:  cfg.MaxDocuments,
		Schedule:      cfg.Schedule,
	}
}

// Pruner enforces retention policies on stored documents.
type Pruner struct {
	storage table.Storage
	metrics *metrics.Collector
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewPruner creates a new retention pruner. collector may be nil.
func NewPruner(storage table.Storage, collector *metrics.Collector, cfg *Config) *Pruner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Pruner{
		storage: storage,
		metrics: collector,
		config:  cfg,
		logger:  slog.Default().With("component", "table.retention"),
		now:     time.Now,
	}
}

// Config returns the pruner's configuration.
func (p *Pruner) Config() *Config {
	return p.config
}

// Prune deletes documents older than the retention period, then the oldest
// documents beyond MaxDocuments. Returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	ctx, span := tracing.Start(ctx, "retention.Prune")
	defer span.End()

	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		totalDeleted += deleted
		if err != nil {
			p.metrics.RecordPruned(totalDeleted)
			err = fmt.Errorf("prune by age failed: %w", err)
			tracing.SetError(span, err)
			return totalDeleted, err
		}
		p.logger.Info("pruned documents by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxDocuments > 0 {
		deleted, err := p.pruneByCount(ctx)
		totalDeleted += deleted
		if err != nil {
			p.metrics.RecordPruned(totalDeleted)
			err = fmt.Errorf("prune by count failed: %w", err)
			tracing.SetError(span, err)
			return totalDeleted, err
		}
		p.logger.Info("pruned documents by count",
			"deleted_count", deleted,
			"max_documents", p.config.MaxDocuments,
		)
	}

	p.metrics.RecordPruned(totalDeleted)
	tracing.SetRetentionAttributes(span, totalDeleted)

	if totalDeleted == 0 {
		p.logger.Debug("no documents pruned",
			"retention_days", p.config.RetentionDays,
			"max_documents", p.config.MaxDocuments,
		)
	} else {
		p.logger.Info("document pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_documents", p.config.MaxDocuments,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes documents created before the cutoff.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	deleted, err := p.storage.Delete(ctx, &table.DocumentQuery{CreatedBefore: &cutoff})
	if err != nil {
		return 0, table.NewRetentionError(p.config.RetentionDays, err)
	}
	return deleted, nil
}

// pruneByCount deletes the oldest documents beyond MaxDocuments. Listing is
// newest first, so everything past the first MaxDocuments entries goes.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, nil)
	if err != nil {
		return 0, table.NewRetentionError(p.config.RetentionDays, fmt.Errorf("failed to count documents: %w", err))
	}

	if count <= p.config.MaxDocuments {
		p.logger.Debug("document count within limit",
			"current", count,
			"max", p.config.MaxDocuments,
		)
		return 0, nil
	}

	p.logger.Info("document count exceeds limit, pruning oldest",
		"current_count", count,
		"max_documents", p.config.MaxDocuments,
		"to_delete", count-p.config.MaxDocuments,
	)

	excess, err := p.storage.List(ctx, &table.DocumentQuery{Offset: int(p.config.MaxDocuments)})
	if err != nil {
		return 0, table.NewRetentionError(p.config.RetentionDays, fmt.Errorf("failed to list documents: %w", err))
	}
	if len(excess) == 0 {
		return 0, nil
	}

	ids := make([]string, len(excess))
	for i, doc := range excess {
		ids[i] = doc.ID
	}

	deleted, err := p.storage.Delete(ctx, &table.DocumentQuery{IDs: ids})
	if err != nil {
		return 0, table.NewRetentionError(p.config.RetentionDays, fmt.Errorf("delete failed: %w", err))
	}
	return deleted, nil
}
