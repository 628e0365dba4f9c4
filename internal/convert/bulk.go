package convert

import (
	"context"
	"sync"

	"github.com/carbonlens/carbonlens/internal/convert/batch"
	"github.com/carbonlens/carbonlens/internal/logging"
	"github.com/carbonlens/carbonlens/internal/model"
)

// BulkResult is the outcome of a bulk conversion: the records that were
// created plus per-item failure entries for the rest.
type BulkResult struct {
	Records []model.EmissionRecord `json:"records"`
	Batch   batch.Result           `json:"batch"`
}

// BulkRecords converts a slice of RecordInputs concurrently. Conversion
// errors (unsupported gas, unknown GWP) fail only their own item; the batch
// always runs to completion. Record order follows input order with failed
// items omitted.
func BulkRecords(ctx context.Context, inputs []RecordInput, concurrency int) (BulkResult, error) {
	var (
		mu      sync.Mutex
		records = make([]model.EmissionRecord, 0, len(inputs))
		byIndex = make(map[int]model.EmissionRecord, len(inputs))
	)

	result, err := batch.Run(ctx, inputs, concurrency, func(ctx context.Context, index int, in RecordInput) error {
		record, err := NewRecord(ctx, in)
		if err != nil {
			return err
		}
		mu.Lock()
		byIndex[index] = record
		mu.Unlock()
		return nil
	})
	if err != nil {
		return BulkResult{}, err
	}

	for i := range inputs {
		if record, ok := byIndex[i]; ok {
			records = append(records, record)
		}
	}

	logging.FromContext(ctx).Info().
		Str("component", "convert").
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("bulk conversion finished")

	return BulkResult{Records: records, Batch: result}, nil
}
