// Package classify maps free-text operation labels to their semantic
// class, backed by a persisted per-owner mapping and the external
// classification capability for labels never seen before.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/llm"
	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/numeric"
	"github.com/mkravets/payout-lens/internal/service"
)

// Config holds classifier tuning knobs.
type Config struct {
	// BatchSize bounds how many unknown labels go into one external
	// call.
	BatchSize int
	// MaxExamples bounds how many example rows accompany each label.
	MaxExamples int
	// Timeout bounds the whole classification pass; labels still
	// unresolved when it expires default to "other".
	Timeout time.Duration
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:   20,
		MaxExamples: 3,
		Timeout:     2 * time.Minute,
	}
}

// Classifier fills gaps in the persisted OpsMap for one owner.
type Classifier struct {
	storage service.Storage
	client  llm.Client
	logger  *slog.Logger
	config  Config

	// OnBatch, when set, is called after each external batch with the
	// number of batches completed and the total planned.
	OnBatch func(done, total int)
}

// New creates a classifier. A nil client disables external calls;
// unknown labels then default to "other" without being persisted.
func New(storage service.Storage, client llm.Client, logger *slog.Logger, config Config) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	if config.MaxExamples <= 0 {
		config.MaxExamples = DefaultConfig().MaxExamples
	}
	return &Classifier{
		storage: storage,
		client:  client,
		logger:  logger,
		config:  config,
	}
}

// labelEvidence accumulates example rows for one unknown label,
// preferring nonzero-amount rows.
type labelEvidence struct {
	nonzero []llm.Example
	zero    []llm.Example
}

func (e *labelEvidence) examples(limit int) []llm.Example {
	out := make([]llm.Example, 0, limit)
	out = append(out, e.nonzero...)
	for _, ex := range e.zero {
		if len(out) >= limit {
			break
		}
		out = append(out, ex)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ClassifyTable returns a complete label-to-class mapping for every
// distinct operation label in the table's operation column. Known
// labels come from the persisted mapping and incur no external call;
// unknown labels are classified in bounded batches, merged into the
// persisted mapping, and persisted immediately after each batch.
func (c *Classifier) ClassifyTable(ctx context.Context, owner string, table *model.Table, cm model.ColumnMap) (model.OpsMap, error) {
	result := make(model.OpsMap)
	if !cm.HasOp() {
		return result, nil
	}

	labels, evidence := c.collectLabels(table, cm)
	if len(labels) == 0 {
		return result, nil
	}

	known, err := c.storage.GetOpsMap(ctx, owner)
	if err != nil {
		// Worst case we re-classify labels a previous run already
		// learned; re-classification is idempotent.
		c.logger.Warn("operation mapping store unreachable, treating all labels as unknown",
			"owner", owner, "error", err)
		known = make(model.OpsMap)
	}

	var unknown []string
	for _, label := range labels {
		if class, ok := known[label]; ok {
			result[label] = class
		} else {
			unknown = append(unknown, label)
		}
	}

	if len(unknown) == 0 {
		return result, nil
	}

	if c.client == nil {
		c.defaultRemaining(result, unknown)
		return result, nil
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	c.classifyBatches(ctx, owner, unknown, evidence, result)
	return result, nil
}

// collectLabels walks the operation column gathering distinct labels
// in first-occurrence order plus example rows for each.
func (c *Classifier) collectLabels(table *model.Table, cm model.ColumnMap) ([]string, map[string]*labelEvidence) {
	var labels []string
	evidence := make(map[string]*labelEvidence)

	for row := cm.DataStart(); row < table.RowCount(); row++ {
		label := table.Cell(row, cm.Op)
		if label == "" {
			continue
		}

		ev, ok := evidence[label]
		if !ok {
			ev = &labelEvidence{}
			evidence[label] = ev
			labels = append(labels, label)
		}

		amount, parsed := numeric.Normalize(table.Cell(row, cm.Amount))
		if !parsed {
			continue
		}
		ex := llm.Example{Code: table.Cell(row, cm.SKU), Amount: amount}
		if amount != 0 && len(ev.nonzero) < c.config.MaxExamples {
			ev.nonzero = append(ev.nonzero, ex)
		} else if amount == 0 && len(ev.zero) < c.config.MaxExamples {
			ev.zero = append(ev.zero, ex)
		}
	}

	return labels, evidence
}

// classifyBatches submits unknown labels in bounded batches, merging
// and persisting after every successful batch. Failed batches and
// anything left after a timeout default to "other" for this run only,
// so a later run can try again.
func (c *Classifier) classifyBatches(ctx context.Context, owner string, unknown []string, evidence map[string]*labelEvidence, result model.OpsMap) {
	total := (len(unknown) + c.config.BatchSize - 1) / c.config.BatchSize

	for i := 0; i < len(unknown); i += c.config.BatchSize {
		batchNum := i/c.config.BatchSize + 1

		end := i + c.config.BatchSize
		if end > len(unknown) {
			end = len(unknown)
		}
		batch := unknown[i:end]

		if err := ctx.Err(); err != nil {
			c.logger.Warn("classification timed out, defaulting remaining labels",
				"owner", owner, "remaining", len(unknown)-i)
			c.defaultRemaining(result, unknown[i:])
			return
		}

		classified, err := c.classifyBatch(ctx, batch, evidence)
		if err != nil {
			c.logger.Warn("classification batch failed, defaulting its labels",
				"owner", owner, "batch", batchNum, "error", err)
			c.defaultRemaining(result, batch)
			if errors.Is(err, context.DeadlineExceeded) {
				c.defaultRemaining(result, unknown[end:])
				return
			}
			continue
		}

		result.Merge(classified)
		if err := c.storage.SaveOpsMap(ctx, owner, classified); err != nil {
			// At-least-once durability: the next run re-classifies.
			c.logger.Warn("failed to persist classified labels",
				"owner", owner, "count", len(classified), "error", err)
		}

		if c.OnBatch != nil {
			c.OnBatch(batchNum, total)
		}
	}
}

func (c *Classifier) classifyBatch(ctx context.Context, batch []string, evidence map[string]*labelEvidence) (model.OpsMap, error) {
	req := llm.ClassifyRequest{Labels: make([]llm.LabelExamples, 0, len(batch))}
	for _, label := range batch {
		req.Labels = append(req.Labels, llm.LabelExamples{
			Label:    label,
			Examples: evidence[label].examples(c.config.MaxExamples),
		})
	}

	resp, err := c.client.ClassifyOperations(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationUnavailable, err)
	}

	classified := make(model.OpsMap, len(resp.Labels))
	for _, verdict := range resp.Labels {
		classified[verdict.Label] = verdict.Class
	}
	return classified, nil
}

// defaultRemaining fills the result map with "other" for labels the
// capability never resolved. These defaults are per-run and not
// persisted.
func (c *Classifier) defaultRemaining(result model.OpsMap, labels []string) {
	for _, label := range labels {
		if _, ok := result[label]; !ok {
			result[label] = model.OpOther
		}
	}
}
