// Package judge defines the backend-neutral contract for online-judge
// clients: the record types scraped out of judge pages, the verdict
// vocabulary, and the Judge interface every concrete backend implements.
// New judges are added as new implementations, never by branching inside
// an existing one.
package judge

import "context"

// SortType is the server-side ordering applied to problem-set listings.
// The value is placed verbatim in the listing query.
type SortType string

const (
	SortByID         SortType = "id"
	SortByDifficulty SortType = "difficulty"
	SortByRating     SortType = "rating"
)

// ProblemSetQuery selects and orders a problem-set listing. Zero value
// means: default page, no tag filter, judge's default order, solved
// problems included.
type ProblemSetQuery struct {
	// page id as returned by Pages, empty for the backend default
	Page string
	// tag id as returned by Tags, empty for no tag filter
	Tag  string
	Sort SortType
	// when false, problems already solved by the current user are skipped
	ShowAccepted bool
}

// Judge is one online-judge backend. A Judge owns its HTTP session
// (cookies, identity); one instance serves one user and must not be
// shared between users. Implementations cache the slowly-changing
// reference data (languages, tags, pages) for their own lifetime.
type Judge interface {
	// Login authenticates against the judge. The judge reports neither
	// success nor failure in-band; callers confirm identity with AuthKey.
	Login(ctx context.Context, judgeID, password string) error
	// LoginLocal injects a previously obtained auth key into the session,
	// skipping the network login.
	LoginLocal(ctx context.Context, judgeID, password, authKey string) error
	// AuthKey returns the identity token currently held by the session.
	AuthKey() (string, error)

	// Submit sends one solution and returns the judge-assigned submit id.
	// Rate-limited attempts are retried internally up to a fixed ceiling,
	// after which ErrSubmitTimeout is returned.
	Submit(ctx context.Context, judgeID, languageID string, problem int, source string) (string, error)
	// SubmitStatus fetches the current state of one submission exactly
	// once; polling loops belong to Poll.
	SubmitStatus(ctx context.Context, submitID string) (SubmitStatus, error)
	// CompilationError fetches the full compiler log for a submission.
	// An empty string means the judge has no log for it.
	CompilationError(ctx context.Context, submitID string) (string, error)
	// SubmitSource fetches the source text of an own submission. Requires
	// the password to be set in-session.
	SubmitSource(ctx context.Context, submitID string) (string, error)

	Problem(ctx context.Context, number int) (Problem, error)
	ProblemSet(ctx context.Context, q ProblemSetQuery) ([]Problem, error)
	ProblemSubmits(ctx context.Context, problem, count int) ([]SubmitStatus, error)

	Languages(ctx context.Context) ([]Language, error)
	Tags(ctx context.Context) ([]Tag, error)
	Pages(ctx context.Context) ([]Page, error)
	// TagByID and PageByID match case-insensitively against the cached
	// listings and return NotFoundError on miss.
	TagByID(ctx context.Context, id string) (Tag, error)
	PageByID(ctx context.Context, id string) (Page, error)
}
