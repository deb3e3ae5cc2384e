package judge

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedJudge plays back a fixed sequence of statuses; any other
// Judge method panics through the embedded nil interface.
type scriptedJudge struct {
	Judge
	statuses []SubmitStatus
	calls    atomic.Int64
}

func (j *scriptedJudge) SubmitStatus(ctx context.Context, submitID string) (SubmitStatus, error) {
	i := int(j.calls.Add(1)) - 1
	if i >= len(j.statuses) {
		i = len(j.statuses) - 1
	}
	return j.statuses[i], nil
}

func status(verdict string) SubmitStatus {
	var s SubmitStatus
	s.SetVerdict(verdict)
	return s
}

func TestPollStopsAtTerminalVerdict(t *testing.T) {
	j := &scriptedJudge{statuses: []SubmitStatus{
		status("Compiling"),
		status("Running"),
		status("Running"),
		status("Wrong answer"),
	}}

	var seen []string
	final, err := Poll(context.Background(), j, "10881", time.Millisecond, func(s SubmitStatus) {
		seen = append(seen, s.Verdict)
	})
	require.NoError(t, err)
	require.Equal(t, VerdictFailed, final.Verdict)
	require.Equal(t, "Wrong answer", final.Info)
	require.EqualValues(t, 4, j.calls.Load())
	require.Equal(t, []string{"Compiling", "Running", "Running", "Failed"}, seen)
}

func TestPollAccepted(t *testing.T) {
	j := &scriptedJudge{statuses: []SubmitStatus{status("Accepted")}}

	final, err := Poll(context.Background(), j, "10881", time.Millisecond, nil)
	require.NoError(t, err)
	require.True(t, final.Accepted())
	require.EqualValues(t, 1, j.calls.Load())
}

func TestPollCancelled(t *testing.T) {
	j := &scriptedJudge{statuses: []SubmitStatus{status("Running")}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Poll(ctx, j, "10881", time.Hour, nil)
		done <- err
	}()

	// let the first fetch land before cancelling
	require.Eventually(t, func() bool { return j.calls.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poll did not stop on cancellation")
	}
}
