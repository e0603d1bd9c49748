package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravets/payout-lens/internal/common"
	"github.com/mkravets/payout-lens/internal/llm"
	"github.com/mkravets/payout-lens/internal/model"
)

const (
	// fallbackSampleRows bounds how many rows are sent to the
	// capability alongside the column labels.
	fallbackSampleRows = 20
	// fallbackSampleBytes caps the total sample payload so a fallback
	// request stays within one bounded call.
	fallbackSampleBytes = 64 << 10
)

// capabilityFallback submits the column labels plus a row sample to
// the external classification capability and accepts the proposed map
// only if it supplies both mandatory roles.
type capabilityFallback struct {
	client llm.Client
	logger *slog.Logger
}

func (c *capabilityFallback) Name() string { return "external-capability" }

func (c *capabilityFallback) Resolve(ctx context.Context, table *model.Table, current model.ColumnMap) (model.ColumnMap, error) {
	headerRow := current.HeaderRow
	if headerRow < 0 {
		headerRow = 0
	}

	req := llm.ColumnRequest{
		Columns:    table.Rows[headerRow],
		SampleRows: sampleRows(table, headerRow+1),
	}

	resp, err := c.client.ResolveColumns(ctx, req)
	if err != nil {
		return current, fmt.Errorf("%w: %v", common.ErrClassificationUnavailable, err)
	}

	if resp.SKU == nil || resp.Amount == nil {
		return current, fmt.Errorf("%w: capability did not supply sku and amount", common.ErrClassificationUnavailable)
	}

	m := current
	m.HeaderRow = headerRow
	m.SKU = *resp.SKU
	m.Amount = *resp.Amount
	if m.Qty == model.NoColumn && resp.Qty != nil {
		m.Qty = *resp.Qty
	}
	if m.Op == model.NoColumn && resp.Op != nil {
		m.Op = *resp.Op
	}

	c.logger.Info("columns resolved by external capability",
		"sku", m.SKU, "amount", m.Amount, "qty", m.Qty, "op", m.Op)

	return m, nil
}

// sampleRows returns up to fallbackSampleRows data rows, stopping
// early when the byte cap is hit.
func sampleRows(table *model.Table, start int) [][]string {
	var sample [][]string
	size := 0

	for row := start; row < table.RowCount() && len(sample) < fallbackSampleRows; row++ {
		r := table.Rows[row]
		for _, cell := range r {
			size += len(cell) + 1
		}
		if size > fallbackSampleBytes {
			break
		}
		sample = append(sample, r)
	}

	return sample
}
