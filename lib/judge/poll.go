package judge

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("judge")

// DefaultPollInterval is the wait between status fetches. The judge has
// no push channel, busy-polling is the only option.
const DefaultPollInterval = 300 * time.Millisecond

// Poll drives repeated status fetches for one submission until a terminal
// verdict arrives. Every fetched status, including the terminal one, is
// handed to onStatus (which may be nil); each record fully replaces the
// previous one. Cancelling ctx stops the loop without touching judge-side
// state: the submission keeps judging server-side regardless.
//
// There is no iteration cap, a terminal verdict is assumed to always
// eventually arrive.
func Poll(ctx context.Context, j Judge, submitID string, interval time.Duration, onStatus func(SubmitStatus)) (SubmitStatus, error) {
	ctx, span := tracer.Start(ctx, "Poll")
	defer span.End()

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	timer.Stop()

	for {
		status, err := j.SubmitStatus(ctx, submitID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "status fetch failed")
			return SubmitStatus{}, err
		}
		if onStatus != nil {
			onStatus(status)
		}
		if !status.InProcess() {
			slog.DebugContext(ctx, "submission reached terminal verdict",
				"submit_id", submitID, "verdict", status.Verdict, "info", status.Info)
			return status, nil
		}

		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return SubmitStatus{}, ctx.Err()
		case <-timer.C:
		}
	}
}
