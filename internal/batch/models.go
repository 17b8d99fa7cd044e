package batch

import "time"

// Status represents the lifecycle of a batch job.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

var allStatuses = []Status{StatusPending, StatusRunning, StatusDone, StatusFailed}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ValidStatus reports whether value names a known job status.
func ValidStatus(value Status) bool {
	_, ok := statusSet[value]
	return ok
}

// Kind selects the transform a job performs.
type Kind string

const (
	// KindShrink fits the input to a target byte size. PDFs go through the
	// document pipeline, everything else through the image pipeline.
	KindShrink Kind = "shrink"
	// KindScale rewrites a PDF onto a standard paper size.
	KindScale Kind = "scale"
)

// Job is one queued transform.
type Job struct {
	ID           int64
	Kind         Kind
	InputPath    string
	OutputPath   string
	TargetBytes  int64
	Paper        string
	Status       Status
	RunID        string
	ErrorMessage string

	// Result fields, populated once the job finishes.
	Method    string
	Quality   int
	SizeBytes int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
