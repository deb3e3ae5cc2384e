// parsers.go turns judge HTML documents into typed records. Every
// function here is pure: no network, no retries, no state. A structural
// assumption that does not hold yields judge.ParseError naming the
// offending region, never a silently guessed value.
package timus

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"acmcli/lib/htmlutil"
	"acmcli/lib/judge"

	"github.com/PuerkitoBio/goquery"
)

func parseError(location, format string, args ...any) judge.ParseError {
	return judge.ParseError{Location: location, Detail: fmt.Sprintf(format, args...)}
}

func parseProblem(doc *goquery.Document) (judge.Problem, error) {
	var p judge.Problem
	if err := setNumberAndTitle(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	if err := setLimits(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	if err := setAuthorAndSource(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	if err := setTags(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	if err := setLinks(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	if err := setTextAndSamples(doc, &p); err != nil {
		return judge.Problem{}, err
	}
	return p, nil
}

func setNumberAndTitle(doc *goquery.Document, p *judge.Problem) error {
	title := doc.Find(".problem_title").First()
	if title.Length() == 0 {
		return parseError(".problem_title", "title block not found")
	}
	text := htmlutil.LeadingText(title.Nodes[0])
	dot := strings.Index(text, ".")
	if dot < 0 {
		return parseError(".problem_title", "no number/title separator in %q", text)
	}
	number, err := strconv.Atoi(strings.TrimSpace(text[:dot]))
	if err != nil {
		return parseError(".problem_title", "non-numeric problem number in %q", text)
	}
	p.Number = number
	p.Title = strings.TrimSpace(text[dot+1:])
	return nil
}

func setLimits(doc *goquery.Document, p *judge.Problem) error {
	limits := doc.Find(".problem_limits").First()
	if limits.Length() == 0 {
		return parseError(".problem_limits", "limits block not found")
	}
	lines := htmlutil.TextNodes(limits.Nodes[0])
	if len(lines) < 2 {
		return parseError(".problem_limits", "expected two limit lines, got %d", len(lines))
	}
	timeLimit, err := limitValue(lines[0])
	if err != nil {
		return err
	}
	memoryLimit, err := limitValue(lines[1])
	if err != nil {
		return err
	}
	p.TimeLimit = timeLimit
	p.MemoryLimit = memoryLimit
	return nil
}

func limitValue(line string) (string, error) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", parseError(".problem_limits", "no label/value separator in %q", line)
	}
	return strings.TrimSpace(value), nil
}

var authorLabels = []string{"Problem Author:", "Автор задачи:"}
var sourceLabels = []string{"Problem Source:", "Источник задачи:"}

// The attribution block comes in three shapes: empty, author+source
// (four text nodes, positional), or a single labeled entry (two text
// nodes, label matched exactly against the bilingual set).
func setAuthorAndSource(doc *goquery.Document, p *judge.Problem) error {
	source := doc.Find(".problem_source").First()
	if source.Length() == 0 {
		return parseError(".problem_source", "attribution block not found")
	}
	texts := htmlutil.TextNodes(source.Nodes[0])
	switch len(texts) {
	case 0:
	case 4:
		p.Author = strings.TrimSpace(texts[1])
		p.Source = strings.TrimSpace(texts[3])
	case 2:
		label := strings.TrimSpace(texts[0])
		value := strings.TrimSpace(texts[1])
		switch {
		case matchesLabel(label, authorLabels):
			p.Author = value
		case matchesLabel(label, sourceLabels):
			p.Source = value
		default:
			return parseError(".problem_source", "unrecognized attribution label %q", label)
		}
	default:
		return parseError(".problem_source", "unexpected attribution shape: %d text nodes", len(texts))
	}
	return nil
}

func matchesLabel(label string, labels []string) bool {
	for _, l := range labels {
		if label == l {
			return true
		}
	}
	return false
}

func setTags(doc *goquery.Document, p *judge.Problem) error {
	toggle := doc.Find(".problem_tags_toggle").First()
	if toggle.Length() == 0 {
		return parseError(".problem_tags_toggle", "tags marker not found")
	}
	toggle.Parent().ChildrenFiltered("a[href]").Each(func(_ int, a *goquery.Selection) {
		p.Tags = append(p.Tags, htmlutil.LeadingText(a.Nodes[0]))
	})
	return nil
}

// The links block carries difficulty, the current user's accepted marker
// and the counter anchors. Accepted users get one extra anchor, which
// shifts the counter positions by one; exactly 7 anchors without the
// marker is the only layout known to mean "attempted, not solved", any
// other count leaves the accepted state unknown.
func setLinks(doc *goquery.Document, p *judge.Problem) error {
	links := doc.Find(".problem_links").First()
	if links.Length() == 0 {
		return parseError(".problem_links", "links block not found")
	}

	span := links.ChildrenFiltered("span").First()
	if span.Length() == 0 {
		return parseError(".problem_links", "difficulty span not found")
	}
	fields := strings.Fields(span.Text())
	if len(fields) < 2 {
		return parseError(".problem_links", "short difficulty text %q", span.Text())
	}
	difficulty, err := strconv.Atoi(fields[1])
	if err != nil {
		return parseError(".problem_links", "non-numeric difficulty %q", fields[1])
	}
	p.Difficulty = difficulty

	anchors := links.ChildrenFiltered("a[href]")
	count := anchors.Length()

	accepted := links.Find(".myac").Length() == 1
	if accepted {
		p.Accepted = boolPtr(true)
	} else if count == 7 {
		p.Accepted = boolPtr(false)
	}

	if count < 3 {
		return parseError(".problem_links", "expected at least 3 link anchors, got %d", count)
	}
	p.DiscussionCount, err = anchorCounter(anchors.Eq(2))
	if err != nil {
		return err
	}

	offset := 3
	if count == 7 {
		offset = 4
	}
	if count < offset+3 {
		return parseError(".problem_links", "expected %d link anchors, got %d", offset+3, count)
	}
	p.SubmissionCount, err = anchorCounter(anchors.Eq(offset))
	if err != nil {
		return err
	}
	p.AcceptedSubmissionCount, err = anchorCounter(anchors.Eq(offset + 1))
	if err != nil {
		return err
	}
	p.RatingLength, err = anchorCounter(anchors.Eq(offset + 2))
	if err != nil {
		return err
	}
	return nil
}

// anchorCounter extracts the integer out of anchor text shaped like
// "Discussion (15)": drop the closing char, take what follows the last
// opening paren.
func anchorCounter(a *goquery.Selection) (int, error) {
	text := htmlutil.LeadingText(a.Nodes[0])
	runes := []rune(text)
	if len(runes) == 0 {
		return 0, parseError(".problem_links", "empty counter anchor")
	}
	trimmed := string(runes[:len(runes)-1])
	paren := strings.LastIndex(trimmed, "(")
	n, err := strconv.Atoi(trimmed[paren+1:])
	if err != nil {
		return 0, parseError(".problem_links", "non-numeric counter in %q", text)
	}
	return n, nil
}

var inputHeadings = []string{"Input", "Исходные данные"}
var outputHeadings = []string{"Output", "Результат"}
var sampleHeadings = []string{"Sample", "Samples", "Пример", "Примеры"}

func setTextAndSamples(doc *goquery.Document, p *judge.Problem) error {
	text := doc.Find("#problem_text").First()
	if text.Length() == 0 {
		return parseError("#problem_text", "problem body not found")
	}
	text.Find(".problem_source").Remove()

	// the Input/Output headings each introduce exactly one block, both
	// heading and block are consumed and stripped from the body
	var consumed []*goquery.Selection
	var blockErr error
	inputNext, outputNext := false, false
	text.Children().Each(func(_ int, div *goquery.Selection) {
		if blockErr != nil {
			return
		}
		heading := htmlutil.LeadingText(div.Nodes[0])
		switch {
		case matchesLabel(heading, inputHeadings):
			inputNext = true
		case matchesLabel(heading, outputHeadings):
			outputNext = true
		case inputNext:
			inputNext = false
			p.Input, blockErr = renderBlock(div)
		case outputNext:
			outputNext = false
			p.Output, blockErr = renderBlock(div)
		default:
			return
		}
		consumed = append(consumed, div)
	})
	if blockErr != nil {
		return blockErr
	}
	for _, div := range consumed {
		div.Remove()
	}

	samples := text.Find(".sample")
	if samples.Length() == 1 {
		if err := extractSamples(text, samples.First(), p); err != nil {
			return err
		}
	}

	outer, err := goquery.OuterHtml(text)
	if err != nil {
		return parseError("#problem_text", "serialize body: %v", err)
	}
	rendered, err := htmlutil.ToText(outer)
	if err != nil {
		return parseError("#problem_text", "render body text: %v", err)
	}
	p.Text = strings.TrimSpace(rendered)
	return nil
}

func renderBlock(div *goquery.Selection) (string, error) {
	outer, err := goquery.OuterHtml(div)
	if err != nil {
		return "", parseError("#problem_text", "serialize block: %v", err)
	}
	rendered, err := htmlutil.ToText(outer)
	if err != nil {
		return "", parseError("#problem_text", "render block text: %v", err)
	}
	return strings.TrimSpace(rendered), nil
}

// extractSamples pairs the alternating sample cells into inputs and
// outputs and strips the sample region plus its heading from the body.
func extractSamples(text, sample *goquery.Selection, p *judge.Problem) error {
	var subtitle *goquery.Selection
	text.Find(".problem_subtitle").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if matchesLabel(htmlutil.LeadingText(h.Nodes[0]), sampleHeadings) {
			subtitle = h
			return false
		}
		return true
	})
	if subtitle == nil {
		return parseError(".problem_subtitle", "sample region without a sample heading")
	}

	cells := sample.Find(".intable")
	if cells.Length()%2 != 0 {
		return parseError(".sample", "unpaired sample cell: %d cells", cells.Length())
	}
	cells.Each(func(i int, cell *goquery.Selection) {
		value := strings.TrimRightFunc(htmlutil.GetText(cell.Nodes[0]), unicode.IsSpace)
		if i%2 == 0 {
			p.SampleInputs = append(p.SampleInputs, value)
		} else {
			p.SampleOutputs = append(p.SampleOutputs, value)
		}
	})

	sample.Remove()
	subtitle.Remove()
	return nil
}

// parseProblemSet reads the listing rows into partial Problem records.
// Row order is the judge's own, already sorted server-side.
func parseProblemSet(doc *goquery.Document) ([]judge.Problem, error) {
	rows := doc.Find(".content")
	problems := []judge.Problem{}
	for i := 1; i < rows.Length(); i++ {
		cells := rows.Eq(i).Children()
		if cells.Length() < 6 {
			return nil, parseError(".content", "listing row %d has %d cells, want 6", i, cells.Length())
		}

		var p judge.Problem
		switch {
		case cells.Eq(0).Find(`img[src="images/ok.gif"]`).Length() > 0:
			p.Accepted = boolPtr(true)
		case cells.Eq(0).Find(`img[src="images/minus.gif"]`).Length() > 0:
			p.Accepted = boolPtr(false)
		}

		number, err := strconv.Atoi(strings.TrimSpace(cells.Eq(1).Text()))
		if err != nil {
			return nil, parseError(".content", "non-numeric problem number %q", cells.Eq(1).Text())
		}
		p.Number = number
		p.Title = cells.Eq(2).Text()
		p.Source = cells.Eq(3).Text()
		p.RatingLength, err = listingCounter(cells.Eq(4))
		if err != nil {
			return nil, err
		}
		p.Difficulty, err = listingCounter(cells.Eq(5))
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, nil
}

func listingCounter(cell *goquery.Selection) (int, error) {
	text := strings.TrimSpace(cell.Text())
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, parseError(".content", "non-numeric listing counter %q", text)
	}
	return n, nil
}

// parseProblemSubmits interleaves the zebra-striped rows back into one
// chronological sequence: merge the two ordered sequences alternately,
// tolerating one trailing row of the first class.
func parseProblemSubmits(doc *goquery.Document) ([]judge.SubmitStatus, error) {
	evens := doc.Find(".even")
	odds := doc.Find(".odd")

	var rows []*goquery.Selection
	paired := min(evens.Length(), odds.Length())
	for i := 0; i < paired; i++ {
		rows = append(rows, evens.Eq(i), odds.Eq(i))
	}
	if evens.Length() > paired {
		rows = append(rows, evens.Eq(paired))
	}

	statuses := make([]judge.SubmitStatus, 0, len(rows))
	for _, row := range rows {
		status, err := parseSubmitStatusRow(row)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// parseSubmitStatus reads the single status row used when polling one
// submission.
func parseSubmitStatus(doc *goquery.Document) (judge.SubmitStatus, error) {
	row := doc.Find(".even").First()
	if row.Length() == 0 {
		return judge.SubmitStatus{}, parseError(".even", "status row not found")
	}
	return parseSubmitStatusRow(row)
}

var verdictClasses = []string{"verdict_rj", "verdict_wt", "verdict_ac"}

func parseSubmitStatusRow(row *goquery.Selection) (judge.SubmitStatus, error) {
	cell := func(class string) (string, error) {
		s := row.Find("." + class).First()
		if s.Length() == 0 {
			return "", parseError("."+class, "cell missing in status row")
		}
		return s.Text(), nil
	}

	var status judge.SubmitStatus
	var err error
	fields := []struct {
		class string
		dst   *string
	}{
		{"id", &status.SubmitID},
		{"date", &status.Date},
		{"coder", &status.Author},
		{"problem", &status.Problem},
		{"language", &status.Language},
		{"test", &status.Test},
		{"runtime", &status.Runtime},
		{"memory", &status.Memory},
	}
	for _, f := range fields {
		*f.dst, err = cell(f.class)
		if err != nil {
			return judge.SubmitStatus{}, err
		}
	}

	verdict := ""
	found := false
	for _, class := range verdictClasses {
		s := row.Find("." + class).First()
		if s.Length() > 0 {
			verdict = s.Text()
			found = true
			break
		}
	}
	if !found {
		return judge.SubmitStatus{}, parseError(".verdict_*", "no verdict cell in status row")
	}
	status.SetVerdict(verdict)

	// raw memory text interleaves a number and a unit, only the number is kept
	memFields := strings.Fields(status.Memory)
	if len(memFields) > 0 {
		status.Memory = strings.Join(memFields[:len(memFields)-1], " ")
	}

	// own submissions link the id cell to the stored source file
	if href, ok := row.Find(".id a").First().Attr("href"); ok {
		if slash := strings.LastIndex(href, "/"); slash >= 0 {
			status.SourceFile = href[slash+1:]
		} else {
			status.SourceFile = href
		}
	}

	return status, nil
}

func parseLanguages(doc *goquery.Document) ([]judge.Language, error) {
	sel := doc.Find("select").First()
	if sel.Length() == 0 {
		return nil, parseError("select", "compiler list not found")
	}
	var languages []judge.Language
	var err error
	sel.ChildrenFiltered("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		value, ok := opt.Attr("value")
		if !ok {
			err = parseError("select option", "option without a value attribute")
			return false
		}
		languages = append(languages, judge.Language{
			ID:          value,
			Description: htmlutil.LeadingText(opt.Nodes[0]),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return languages, nil
}

// Tag and page ids live in the query string of each anchor's target, not
// in the anchor itself.
func parseTags(doc *goquery.Document) ([]judge.Tag, error) {
	ps := doc.Find("p")
	if ps.Length() < 4 {
		return nil, parseError("p", "expected at least 4 paragraphs, got %d", ps.Length())
	}
	var tags []judge.Tag
	for _, group := range []*goquery.Selection{ps.Eq(2), ps.Eq(3)} {
		anchors := group.Find("a")
		for i := 0; i < anchors.Length(); i++ {
			a := anchors.Eq(i)
			id, err := anchorQueryParam(a, "tag")
			if err != nil {
				return nil, err
			}
			tags = append(tags, judge.Tag{
				ID:          id,
				Description: htmlutil.LeadingText(a.Nodes[0]),
			})
		}
	}
	return tags, nil
}

func parsePages(doc *goquery.Document) ([]judge.Page, error) {
	ps := doc.Find("p")
	if ps.Length() < 2 {
		return nil, parseError("p", "expected at least 2 paragraphs, got %d", ps.Length())
	}
	first := ps.Eq(0).Find("a").First()
	if first.Length() == 0 {
		return nil, parseError("p", "no page anchor in the first paragraph")
	}

	anchors := []*goquery.Selection{first}
	rest := ps.Eq(1).Find("a")
	for i := 0; i < rest.Length(); i += 2 {
		anchors = append(anchors, rest.Eq(i))
	}

	var pages []judge.Page
	for _, a := range anchors {
		id, err := anchorQueryParam(a, "page")
		if err != nil {
			return nil, err
		}
		pages = append(pages, judge.Page{
			ID:          id,
			Description: htmlutil.LeadingText(a.Nodes[0]),
		})
	}
	return pages, nil
}

func anchorQueryParam(a *goquery.Selection, param string) (string, error) {
	href, ok := a.Attr("href")
	if !ok {
		return "", parseError("a", "anchor without href")
	}
	link, err := url.Parse(href)
	if err != nil {
		return "", parseError("a", "unparsable href %q", href)
	}
	value := link.Query().Get(param)
	if value == "" {
		return "", parseError("a", "href %q carries no %q parameter", href, param)
	}
	return value, nil
}

func boolPtr(v bool) *bool {
	return &v
}
