package cmd

import (
	"fmt"
	"strings"

	"acmcli/lib/judge"

	"github.com/jedib0t/go-pretty/v6/text"
)

// statusString renders one submission status as the single line shown
// both while polling and in submit listings.
func statusString(s judge.SubmitStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]", text.AlignCenter.Apply(s.Verdict, 11))
	if s.Runtime != "" && s.Memory != "" {
		fmt.Fprintf(&b, " @ time:%s s @ memory:%s KB", text.AlignCenter.Apply(s.Runtime, 7), text.AlignCenter.Apply(s.Memory, 9))
	}
	if s.Test != "" {
		fmt.Fprintf(&b, " @ test:%s", text.AlignCenter.Apply(s.Test, 4))
	}
	if s.Info != "" {
		fmt.Fprintf(&b, " @ info: %s", s.Info)
	}

	return b.String()
}
