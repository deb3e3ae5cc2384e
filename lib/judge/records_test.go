package judge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetVerdict(t *testing.T) {
	cases := []struct {
		raw     string
		verdict string
		info    string
	}{
		{"Compiling", VerdictCompiling, ""},
		{"Running", VerdictRunning, ""},
		{"Waiting", VerdictWaiting, ""},
		{"Accepted", VerdictAccepted, ""},
		{"Wrong answer", VerdictFailed, "Wrong answer"},
		{"Time limit exceeded", VerdictFailed, "Time limit exceeded"},
		{"Memory limit exceeded", VerdictFailed, "Memory limit exceeded"},
		{"Compilation error", VerdictFailed, "Compilation error"},
		{"Runtime error (access violation)", VerdictFailed, "Runtime error (access violation)"},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			var s SubmitStatus
			s.SetVerdict(c.raw)
			require.Equal(t, c.verdict, s.Verdict)
			require.Equal(t, c.info, s.Info)
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	var s SubmitStatus

	s.SetVerdict("Running")
	require.True(t, s.InProcess())
	require.True(t, s.Running())
	require.False(t, s.Accepted())
	require.False(t, s.Failed())

	s = SubmitStatus{}
	s.SetVerdict("Accepted")
	require.False(t, s.InProcess())
	require.True(t, s.Accepted())

	s = SubmitStatus{}
	s.SetVerdict("Compilation error")
	require.True(t, s.Failed())
	require.True(t, s.CompilationError())

	s = SubmitStatus{}
	s.SetVerdict("Wrong answer")
	require.True(t, s.Failed())
	require.False(t, s.CompilationError())
}
