package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowStatusFailed(t *testing.T) {
	assert.Equal(t, RowStatus("FAILED: timeout"), RowStatusFailed("timeout"))
	assert.Equal(t, RowStatus("FAILED"), RowStatusFailed(""))
}

func TestRowStatusIsFailed(t *testing.T) {
	tests := []struct {
		status RowStatus
		want   bool
	}{
		{RowStatusFailed("timeout"), true},
		{RowStatus("FAILED"), true},
		{RowStatusSent, false},
		{RowStatusProcessing, false},
		{RowStatusRetrying, false},
		{RowStatusPending, false},
		// Transient attachment sub-status must not be retryable.
		{RowStatusAttachmentFailed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsFailed())
		})
	}
}

func TestRowStatusFailReason(t *testing.T) {
	assert.Equal(t, "provider down", RowStatusFailed("provider down").FailReason())
	assert.Equal(t, "", RowStatusSent.FailReason())
	assert.Equal(t, "", RowStatus("FAILED").FailReason())
}

func TestDatasetTotalDataRows(t *testing.T) {
	d := Dataset{Rows: []DatasetRow{
		{Index: 1, Email: "a@x.com"},
		{Index: 2, Empty: true},
		{Index: 3, Email: "b@x.com"},
	}}
	assert.Equal(t, 2, d.TotalDataRows())
	assert.Equal(t, 0, Dataset{}.TotalDataRows())
}
