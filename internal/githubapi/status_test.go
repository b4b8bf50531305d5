package githubapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeCIStatus(t *testing.T) {
	tests := []struct {
		name string
		runs []CheckRun
		want CIStatus
	}{
		{
			name: "no runs",
			runs: nil,
			want: CIStatusUnknown,
		},
		{
			name: "all success",
			runs: []CheckRun{
				{ID: 1, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionSuccess},
				{ID: 2, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionSuccess},
			},
			want: CIStatusSuccess,
		},
		{
			name: "any failure wins",
			runs: []CheckRun{
				{ID: 1, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionSuccess},
				{ID: 2, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionFailure},
				{ID: 3, Status: CheckRunStatusInProgress},
			},
			want: CIStatusFailure,
		},
		{
			name: "in progress",
			runs: []CheckRun{
				{ID: 1, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionSuccess},
				{ID: 2, Status: CheckRunStatusInProgress},
			},
			want: CIStatusInProgress,
		},
		{
			name: "queued only",
			runs: []CheckRun{
				{ID: 1, Status: CheckRunStatusQueued},
			},
			want: CIStatusPending,
		},
		{
			name: "completed with non-final mix",
			runs: []CheckRun{
				{ID: 1, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionSkipped},
				{ID: 2, Status: CheckRunStatusCompleted, Conclusion: CheckRunConclusionCancelled},
			},
			want: CIStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeCIStatus(tt.runs))
		})
	}
}
