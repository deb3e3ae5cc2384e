package timus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acmcli/lib/judge"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func docFromFile(t *testing.T, name string) *goquery.Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseProblem(t *testing.T) {
	p, err := parseProblem(docFromFile(t, "problem.html"))
	require.NoError(t, err)

	require.Equal(t, 1000, p.Number)
	require.Equal(t, "A+B Problem", p.Title)
	require.Equal(t, "1.0 second", p.TimeLimit)
	require.Equal(t, "64 MB", p.MemoryLimit)

	require.Equal(t, "Vladimir Yakunin", p.Author)
	require.Equal(t, "NEERC 2000", p.Source)
	require.Equal(t, []string{"integer arithmetics", "for beginners"}, p.Tags)

	require.Equal(t, 76, p.Difficulty)
	require.Equal(t, 215, p.DiscussionCount)
	require.Equal(t, 1295112, p.SubmissionCount)
	require.Equal(t, 275376, p.AcceptedSubmissionCount)
	require.Equal(t, 162342, p.RatingLength)
	require.Nil(t, p.Accepted)

	require.Equal(t, []string{"1 2"}, p.SampleInputs)
	require.Equal(t, []string{"3"}, p.SampleOutputs)

	require.Contains(t, p.Input, "two integers")
	require.Contains(t, p.Output, "single line")
	require.Contains(t, p.Text, "Calculate")
	require.NotContains(t, p.Text, "Problem Author")
	require.NotContains(t, p.Text, "two integers")
}

func TestParseProblemDeterministic(t *testing.T) {
	first, err := parseProblem(docFromFile(t, "problem.html"))
	require.NoError(t, err)
	second, err := parseProblem(docFromFile(t, "problem.html"))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(first, second))
}

const linksTemplate = `<div class="problem_links">
<span>Difficulty: 540</span>
<a href="submit.aspx">Submit solution</a>
<a href="forum.aspx">Discussion</a>
<a href="forum.aspx">Messages (12)</a>
%s
<a href="status.aspx">All submissions (3000)</a>
<a href="status.aspx">All accepted submissions (2000)</a>
<a href="rating.aspx">Solutions rating (1000)</a>
</div>`

func TestSetLinksAcceptedStates(t *testing.T) {
	cases := []struct {
		name     string
		extra    string
		accepted *bool
	}{
		{"solved", `<a class="myac" href="status.aspx?author=me">My submissions (4)</a>`, boolPtr(true)},
		{"attempted", `<a href="status.aspx?author=me">My submissions (4)</a>`, boolPtr(false)},
		{"untouched", ``, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := docFromString(t, strings.Replace(linksTemplate, "%s", c.extra, 1))

			var p judge.Problem
			require.NoError(t, setLinks(doc, &p))
			require.Equal(t, 540, p.Difficulty)
			require.Equal(t, 12, p.DiscussionCount)
			require.Equal(t, 3000, p.SubmissionCount)
			require.Equal(t, 2000, p.AcceptedSubmissionCount)
			require.Equal(t, 1000, p.RatingLength)
			if c.accepted == nil {
				require.Nil(t, p.Accepted)
			} else {
				require.NotNil(t, p.Accepted)
				require.Equal(t, *c.accepted, *p.Accepted)
			}
		})
	}
}

func TestSetAuthorAndSourceSingleLabel(t *testing.T) {
	doc := docFromString(t, `<div class="problem_source"><b>Problem Source: </b>Quarterfinal, Central region of Russia</div>`)
	var p judge.Problem
	require.NoError(t, setAuthorAndSource(doc, &p))
	require.Equal(t, "", p.Author)
	require.Equal(t, "Quarterfinal, Central region of Russia", p.Source)

	doc = docFromString(t, `<div class="problem_source"><b>Автор задачи: </b>Кто-то</div>`)
	p = judge.Problem{}
	require.NoError(t, setAuthorAndSource(doc, &p))
	require.Equal(t, "Кто-то", p.Author)
	require.Equal(t, "", p.Source)

	doc = docFromString(t, `<div class="problem_source"><b>Special Thanks: </b>Nobody</div>`)
	p = judge.Problem{}
	err := setAuthorAndSource(doc, &p)
	var parseErr judge.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSetTextAndSamplesUnpairedCell(t *testing.T) {
	doc := docFromString(t, `<div id="problem_text">
<h3 class="problem_subtitle">Sample</h3>
<table class="sample"><tr>
<td class="intable"><pre>1</pre></td>
<td class="intable"><pre>2</pre></td>
<td class="intable"><pre>3</pre></td>
</tr></table>
</div>`)
	var p judge.Problem
	err := setTextAndSamples(doc, &p)
	var parseErr judge.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, ".sample", parseErr.Location)
}

func TestParseProblemSet(t *testing.T) {
	problems, err := parseProblemSet(docFromFile(t, "problemset.html"))
	require.NoError(t, err)
	require.Len(t, problems, 3)

	require.Equal(t, 1000, problems[0].Number)
	require.Equal(t, "A+B Problem", problems[0].Title)
	require.NotNil(t, problems[0].Accepted)
	require.True(t, *problems[0].Accepted)
	require.Equal(t, 162342, problems[0].RatingLength)
	require.Equal(t, 76, problems[0].Difficulty)

	require.Equal(t, 1001, problems[1].Number)
	require.NotNil(t, problems[1].Accepted)
	require.False(t, *problems[1].Accepted)

	require.Equal(t, 1002, problems[2].Number)
	require.Equal(t, "Timus Top Coders: First Challenge", problems[2].Source)
	require.Nil(t, problems[2].Accepted)
	require.Equal(t, 540, problems[2].Difficulty)
}

func TestParseProblemSetBadCounter(t *testing.T) {
	doc := docFromString(t, `<table>
<tr class="content"><td></td><td>#</td><td>Name</td><td>Source</td><td>Rating</td><td>Difficulty</td></tr>
<tr class="content"><td></td><td>1000</td><td>A+B</td><td></td><td>100</td><td>n/a</td></tr>
</table>`)
	_, err := parseProblemSet(doc)
	var parseErr judge.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseProblemSubmits(t *testing.T) {
	submits, err := parseProblemSubmits(docFromFile(t, "submits.html"))
	require.NoError(t, err)
	require.Len(t, submits, 3)

	require.Equal(t, "10900003", submits[0].SubmitID)
	require.Equal(t, "jdoe", submits[0].Author)
	require.Equal(t, "G++ 9.2 x64", submits[0].Language)
	require.True(t, submits[0].Accepted())
	require.Equal(t, "164", submits[0].Memory)
	require.Equal(t, "0.015", submits[0].Runtime)
	require.Equal(t, "10900003.cpp", submits[0].SourceFile)

	require.Equal(t, "10900001", submits[1].SubmitID)
	require.True(t, submits[1].Failed())
	require.Equal(t, "Wrong answer", submits[1].Info)
	require.Equal(t, "7", submits[1].Test)
	require.Equal(t, "1 234", submits[1].Memory)

	require.Equal(t, "10899997", submits[2].SubmitID)
	require.True(t, submits[2].Failed())
	require.True(t, submits[2].CompilationError())
	require.Equal(t, "", submits[2].SourceFile)
	require.Equal(t, "", submits[2].Memory)
}

func TestParseSubmitStatus(t *testing.T) {
	status, err := parseSubmitStatus(docFromFile(t, "status.html"))
	require.NoError(t, err)

	require.Equal(t, "10900005", status.SubmitID)
	require.Equal(t, judge.VerdictRunning, status.Verdict)
	require.True(t, status.InProcess())
	require.Equal(t, "5", status.Test)
	require.Equal(t, "10900005.cpp", status.SourceFile)
}

func TestParseLanguages(t *testing.T) {
	languages, err := parseLanguages(docFromFile(t, "submit.html"))
	require.NoError(t, err)
	require.Len(t, languages, 6)
	require.Equal(t, judge.Language{ID: "65", Description: "FreePascal 2.6"}, languages[0])
	require.Equal(t, judge.Language{ID: "70", Description: "Go 1.14 x64"}, languages[5])
}

func TestParseTags(t *testing.T) {
	tags, err := parseTags(docFromFile(t, "tags.html"))
	require.NoError(t, err)
	require.Equal(t, []judge.Tag{
		{ID: "combinatorics", Description: "combinatorics"},
		{ID: "dynamic programming", Description: "dynamic programming"},
		{ID: "graph theory", Description: "graph theory"},
		{ID: "string algorithms", Description: "string algorithms"},
		{ID: "unrated", Description: "unrated problems"},
	}, tags)
}

func TestParsePages(t *testing.T) {
	pages, err := parsePages(docFromFile(t, "pages.html"))
	require.NoError(t, err)
	require.Equal(t, []judge.Page{
		{ID: "all", Description: "All Problems"},
		{ID: "1", Description: "Volume 1"},
		{ID: "2", Description: "Volume 2"},
		{ID: "3", Description: "Volume 3"},
	}, pages)
}
