package convert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/model"
)

func TestBulkRecordsMixedOutcomes(t *testing.T) {
	good := testRecordInput()
	bad := testRecordInput()
	bad.Gas = "O3"

	inputs := []RecordInput{good, bad, good}

	result, err := BulkRecords(context.Background(), inputs, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Batch.Total)
	assert.Equal(t, 2, result.Batch.Succeeded)
	assert.Equal(t, 1, result.Batch.Failed)
	require.Len(t, result.Records, 2)
	require.Len(t, result.Batch.Errors, 1)
	assert.Equal(t, 1, result.Batch.Errors[0].Index)
	assert.Contains(t, result.Batch.Errors[0].Message, "unsupported gas")

	for _, record := range result.Records {
		assert.Equal(t, model.GasCH4, record.Gas)
		assert.InDelta(t, 1.4, record.CO2Equivalent, 1e-9)
	}
}

func TestBulkRecordsPreservesInputOrder(t *testing.T) {
	inputs := make([]RecordInput, 10)
	for i := range inputs {
		in := testRecordInput()
		in.Quantity = float64(i + 1)
		in.PeriodStart = time.Date(2025, time.Month(i%12+1), 1, 0, 0, 0, 0, time.UTC)
		inputs[i] = in
	}

	result, err := BulkRecords(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, result.Records, 10)

	for i, record := range result.Records {
		assert.Equal(t, float64(i+1), record.Quantity)
	}
}
