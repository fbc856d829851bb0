package model

// Status is the outcome of processing one fixture.
type Status int

const (
	StatusModified Status = iota
	StatusUnchanged
	StatusWouldModify
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusWouldModify:
		return "would modify"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult is the per-fixture result of a run.
type FileResult struct {
	Name   string
	Status Status
	Lines  int
	Backup string
	Err    error
}

// Summary holds the results of an operation for display.
type Summary struct {
	Modified  []string
	Unchanged []string
	Failed    []string
	Results   []FileResult
	DryRun    bool
	Message   string
}

// Add records a fixture result in the summary.
func (s *Summary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusModified, StatusWouldModify:
		s.Modified = append(s.Modified, r.Name)
	case StatusUnchanged:
		s.Unchanged = append(s.Unchanged, r.Name)
	case StatusFailed:
		s.Failed = append(s.Failed, r.Name)
	}
}
