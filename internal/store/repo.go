package store

import (
	"context"
	"time"

	"github.com/abhisek/mindcheck/internal/survey"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ListOpts configures assessment listing, newest first.
type ListOpts struct {
	Limit  int // max results (0 = unlimited)
	Offset int
	Email  string // exact match when non-empty
}

// Assessment is a stored, submitted questionnaire.
type Assessment struct {
	ID           string
	CreatedAt    time.Time
	Name         string
	Email        string
	Answers      *survey.Response
	Label        int
	Probability  float64 // -1 when the classifier reports none
	ModelVersion string
	Defaulted    []string
	Reflection   string
}

// AssessmentRepo stores submitted assessments.
type AssessmentRepo interface {
	// Save inserts a new assessment.
	Save(ctx context.Context, a *Assessment) error

	// Get returns the assessment with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Assessment, error)

	// List returns assessments, newest first.
	List(ctx context.Context, opts ListOpts) ([]*Assessment, error)

	// Latest returns the most recent assessment, or nil if none exist.
	Latest(ctx context.Context) (*Assessment, error)

	// SetReflection stores the reflection note for an assessment.
	SetReflection(ctx context.Context, id, text string) error

	// DeleteAll removes every assessment and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// Event kinds recorded in the assessment event log.
const (
	EventAssessmentStarted   = "assessment.started"
	EventAssessmentCompleted = "assessment.completed"
	EventReportExported      = "report.exported"
	EventSpeechRendered      = "speech.rendered"
	EventSpeechFailed        = "speech.failed"
)

// EventData captures a single assessment activity event.
type EventData struct {
	Kind         string
	AssessmentID string
	Detail       string
}

// EventRecord is a stored EventData with its sequence and timestamp.
type EventRecord struct {
	Sequence  int64
	Timestamp time.Time
	EventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLMRequestEventData.
type LLMRequestEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendEvent records an assessment activity event.
	AppendEvent(ctx context.Context, data EventData) error

	// QueryEvents returns assessment events in sequence order.
	QueryEvents(ctx context.Context, opts QueryOpts) ([]EventRecord, error)

	// QueryLLMEvents returns LLM request events in sequence order.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM request event by sequence, or nil.
	GetLLMEvent(ctx context.Context, seq int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
