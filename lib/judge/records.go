package judge

// Verdict vocabulary of the judge. Everything terminal that is not
// Accepted is normalized to Failed, with the raw verdict kept in Info.
const (
	VerdictCompiling = "Compiling"
	VerdictRunning   = "Running"
	VerdictWaiting   = "Waiting"
	VerdictAccepted  = "Accepted"
	VerdictFailed    = "Failed"

	compilationErrorInfo = "Compilation error"
)

var processingVerdicts = map[string]bool{
	VerdictCompiling: true,
	VerdictRunning:   true,
	VerdictWaiting:   true,
}

// SubmitStatus is one observation of a submission's state. A fresh record
// is produced per status fetch, earlier ones are superseded, not mutated.
type SubmitStatus struct {
	SubmitID string
	Date     string
	Author   string
	Problem  string
	Language string
	Verdict  string
	// failing or currently running test index, empty if not yet known
	Test    string
	Runtime string
	// memory usage with the unit token already stripped off
	Memory string
	// the raw upstream verdict when Verdict has been normalized to Failed
	Info string
	// filename under which the judge serves this submission's source,
	// empty when the status row carries no source link
	SourceFile string
}

// SetVerdict stores a raw upstream verdict, collapsing any terminal
// non-accepted outcome into Failed and preserving the original in Info.
func (s *SubmitStatus) SetVerdict(verdict string) {
	s.Verdict = verdict
	if !s.InProcess() && !s.Accepted() {
		s.Verdict = VerdictFailed
		s.Info = verdict
	}
}

func (s SubmitStatus) InProcess() bool {
	return processingVerdicts[s.Verdict]
}

func (s SubmitStatus) Running() bool {
	return s.Verdict == VerdictRunning
}

func (s SubmitStatus) Accepted() bool {
	return s.Verdict == VerdictAccepted
}

func (s SubmitStatus) Failed() bool {
	return s.Verdict == VerdictFailed
}

func (s SubmitStatus) CompilationError() bool {
	return s.Info == compilationErrorInfo
}

// Problem is one judge problem. Records are immutable after parse.
// Problem-set listings yield partial records: only Accepted, Number,
// Title, Source, RatingLength and Difficulty are populated there.
type Problem struct {
	Number      int
	Title       string
	TimeLimit   string
	MemoryLimit string

	Text   string
	Input  string
	Output string

	// index-paired: SampleOutputs[i] is the expected output for SampleInputs[i]
	SampleInputs  []string
	SampleOutputs []string

	Author string
	Source string

	Tags []string

	Difficulty              int
	DiscussionCount         int
	SubmissionCount         int
	AcceptedSubmissionCount int
	RatingLength            int

	// nil means no attempt by the current user (or unknown, the upstream
	// markup does not always distinguish the two)
	Accepted *bool
}

// Language is a compiler the judge accepts, ID being the opaque value
// expected in the submission payload.
type Language struct {
	ID          string
	Description string
}

// Tag is a topic facet for filtering the problem catalog.
type Tag struct {
	ID          string
	Description string
}

// Page is a curated problem grouping (volume, contest, "all").
type Page struct {
	ID          string
	Description string
}
