package githubapi

// CIStatus is a single-value rollup of a commit's check runs.
type CIStatus string

const (
	CIStatusSuccess    CIStatus = "success"
	CIStatusFailure    CIStatus = "failure"
	CIStatusInProgress CIStatus = "in_progress"
	CIStatusPending    CIStatus = "pending"
	CIStatusUnknown    CIStatus = "unknown"
)

func (s CIStatus) String() string {
	return string(s)
}

// SummarizeCIStatus collapses a commit's check runs into one status. Failure
// wins over everything; otherwise any run still executing or queued keeps the
// rollup non-final.
func SummarizeCIStatus(runs []CheckRun) CIStatus {
	if len(runs) == 0 {
		return CIStatusUnknown
	}

	allSucceeded := true
	for _, run := range runs {
		switch {
		case run.Conclusion == CheckRunConclusionFailure:
			return CIStatusFailure
		case run.Conclusion != CheckRunConclusionSuccess:
			allSucceeded = false
		}
	}
	if allSucceeded {
		return CIStatusSuccess
	}

	for _, run := range runs {
		if run.Status == CheckRunStatusInProgress {
			return CIStatusInProgress
		}
	}
	for _, run := range runs {
		if run.Status == CheckRunStatusQueued {
			return CIStatusPending
		}
	}
	return CIStatusUnknown
}
