// Package timus drives the Timus online judge (acm.timus.ru) through its
// server-rendered pages. The judge has no API: every operation is a GET
// or a form POST whose response body is HTML, handed to the parsers in
// parsers.go. One Client owns one cookie session and serves one user.
package timus

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"acmcli/lib/judge"
	"acmcli/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/timus")

const (
	DefaultBaseUrl = "https://acm.timus.ru"
	LocaleEnglish  = "English"
	LocaleRussian  = "Russian"

	authKeyCookie = "AuthorID"

	// the judge signals a successful submission with this response header;
	// its absence means the rolling rate-limit window has not cleared yet
	submitIDHeader = "X-SubmitID"

	// the judge enforces ~10s between accepted submissions; fixed-interval
	// retries converge quickly once the window clears
	defaultSubmitRetryInterval = 300 * time.Millisecond
	defaultSubmitRetryCeiling  = 15 * time.Second
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// Locale cookie value, LocaleEnglish or LocaleRussian
	Locale string
	// overrides for the submission retry policy, zero means default
	SubmitRetryInterval time.Duration
	SubmitRetryCeiling  time.Duration
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client

	judgeID  string
	password string

	retryInterval time.Duration
	retryCeiling  time.Duration

	// reference data cached for the client's lifetime, these lists
	// never change within one CLI invocation
	languages []judge.Language
	tags      []judge.Tag
	pages     []judge.Page
}

var _ judge.Judge = (*Client)(nil)

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Locale == "" {
		opts.Locale = LocaleEnglish
	}
	if opts.SubmitRetryInterval <= 0 {
		opts.SubmitRetryInterval = defaultSubmitRetryInterval
	}
	if opts.SubmitRetryCeiling <= 0 {
		opts.SubmitRetryCeiling = defaultSubmitRetryCeiling
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetTimeout(time.Second * 30)
	// auth and submit respond with redirects that must not be followed,
	// the interesting parts are the headers and cookies on the first hop
	httpClient.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	httpClient.SetCookie(&http.Cookie{Name: "Locale", Value: opts.Locale})

	// 2 requests max per second
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, "scrapers/timus/http")

	return &Client{
		baseUrl:       baseUrl,
		http:          httpClient,
		retryInterval: opts.SubmitRetryInterval,
		retryCeiling:  opts.SubmitRetryCeiling,
	}, nil
}

// Login posts the credentials. The judge redirects without reporting
// success or failure in-band; callers confirm identity via AuthKey.
func (c *Client) Login(ctx context.Context, judgeID, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	c.judgeID = judgeID
	c.password = password

	_, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"Action":  "login",
			"JudgeID": judgeID,
		}).
		Post("/auth.aspx")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login request failed")
		return fmt.Errorf("timus: login: %w", err)
	}
	return nil
}

// LoginLocal injects a previously verified auth key into the session,
// skipping the network round-trip.
func (c *Client) LoginLocal(ctx context.Context, judgeID, password, authKey string) error {
	c.judgeID = judgeID
	c.password = password
	c.http.GetClient().Jar.SetCookies(c.baseUrl, []*http.Cookie{
		{Name: authKeyCookie, Value: authKey},
	})
	return nil
}

func (c *Client) AuthKey() (string, error) {
	for _, cookie := range c.http.GetClient().Jar.Cookies(c.baseUrl) {
		if cookie.Name == authKeyCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", judge.AuthError{Reason: "no auth key held by the session"}
}

// Submit posts one solution. A response without the submit-id header
// means the judge's rate limiter rejected the attempt; such attempts are
// retried at a fixed interval until the ceiling, then ErrSubmitTimeout.
func (c *Client) Submit(ctx context.Context, judgeID, languageID string, problem int, source string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Submit")
	defer span.End()

	form := map[string]string{
		"Action":     "submit",
		"SpaceID":    "1",
		"JudgeID":    judgeID,
		"Language":   languageID,
		"ProblemNum": strconv.Itoa(problem),
		"Source":     source,
	}

	deadline := time.Now().Add(c.retryCeiling)
	timer := time.NewTimer(c.retryInterval)
	defer timer.Stop()
	timer.Stop()

	for {
		res, err := c.http.R().
			SetContext(ctx).
			SetFormData(form).
			Post("/submit.aspx")
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submit request failed")
			return "", fmt.Errorf("timus: submit: %w", err)
		}

		submitID := res.Header().Get(submitIDHeader)
		if submitID != "" {
			return submitID, nil
		}

		if time.Now().After(deadline) {
			span.SetStatus(codes.Error, "submit retry ceiling exhausted")
			return "", judge.ErrSubmitTimeout
		}
		timer.Reset(c.retryInterval)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) SubmitStatus(ctx context.Context, submitID string) (judge.SubmitStatus, error) {
	ctx, span := tracer.Start(ctx, "client:SubmitStatus")
	defer span.End()

	doc, err := c.getDocument(ctx, "/status.aspx", url.Values{
		"author": {"me"},
		"count":  {"1"},
		"from":   {submitID},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status fetch failed")
		return judge.SubmitStatus{}, err
	}
	return parseSubmitStatus(doc)
}

// CompilationError fetches the compiler log. The judge signals absence by
// responding with an HTML page instead of plain text; that case is an
// empty string, not an error.
func (c *Client) CompilationError(ctx context.Context, submitID string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CompilationError")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", submitID).
		Get("/ce.aspx")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compilation error fetch failed")
		return "", fmt.Errorf("timus: compilation error: %w", err)
	}
	if strings.HasPrefix(res.Header().Get("Content-Type"), "text/html") {
		return "", nil
	}
	return string(res.Body()), nil
}

// SubmitSource retrieves the stored source of an own submission. The
// judge demands the account password for this one.
func (c *Client) SubmitSource(ctx context.Context, submitID string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:SubmitSource")
	defer span.End()

	if c.password == "" {
		return "", judge.AuthError{Reason: "password required to fetch submission source"}
	}

	status, err := c.SubmitStatus(ctx, submitID)
	if err != nil {
		return "", err
	}
	if status.SourceFile == "" {
		return "", judge.ParseError{Location: ".id", Detail: "status row carries no source file link"}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"Action":   "getsubmit",
			"JudgeID":  c.judgeID,
			"Password": c.password,
		}).
		Post("/getsubmit.aspx/" + status.SourceFile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source fetch failed")
		return "", fmt.Errorf("timus: submit source: %w", err)
	}
	if strings.HasPrefix(res.Header().Get("Content-Type"), "text/html") {
		return "", nil
	}
	return string(res.Body()), nil
}

func (c *Client) Problem(ctx context.Context, number int) (judge.Problem, error) {
	ctx, span := tracer.Start(ctx, "client:Problem")
	defer span.End()

	doc, err := c.getDocument(ctx, "/problem.aspx", url.Values{
		"num": {strconv.Itoa(number)},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "problem fetch failed")
		return judge.Problem{}, err
	}
	return parseProblem(doc)
}

func (c *Client) ProblemSet(ctx context.Context, q judge.ProblemSetQuery) ([]judge.Problem, error) {
	ctx, span := tracer.Start(ctx, "client:ProblemSet")
	defer span.End()

	page := q.Page
	if page == "" {
		page = "all"
	}
	sort := q.Sort
	if sort == "" {
		sort = judge.SortByID
	}

	query := url.Values{
		"page":   {page},
		"sort":   {string(sort)},
		"skipac": {strconv.FormatBool(!q.ShowAccepted)},
	}
	if q.Tag != "" {
		query.Set("tag", q.Tag)
	}

	doc, err := c.getDocument(ctx, "/problemset.aspx", query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "problem set fetch failed")
		return nil, err
	}
	return parseProblemSet(doc)
}

func (c *Client) ProblemSubmits(ctx context.Context, problem, count int) ([]judge.SubmitStatus, error) {
	ctx, span := tracer.Start(ctx, "client:ProblemSubmits")
	defer span.End()

	doc, err := c.getDocument(ctx, "/status.aspx", url.Values{
		"author": {"me"},
		"num":    {strconv.Itoa(problem)},
		"count":  {strconv.Itoa(count)},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submits fetch failed")
		return nil, err
	}
	return parseProblemSubmits(doc)
}

func (c *Client) Languages(ctx context.Context) ([]judge.Language, error) {
	if c.languages != nil {
		return c.languages, nil
	}

	ctx, span := tracer.Start(ctx, "client:Languages")
	defer span.End()

	doc, err := c.getDocument(ctx, "/submit.aspx", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "languages fetch failed")
		return nil, err
	}
	languages, err := parseLanguages(doc)
	if err != nil {
		return nil, err
	}
	c.languages = languages
	return languages, nil
}

func (c *Client) Tags(ctx context.Context) ([]judge.Tag, error) {
	if c.tags != nil {
		return c.tags, nil
	}

	ctx, span := tracer.Start(ctx, "client:Tags")
	defer span.End()

	doc, err := c.getDocument(ctx, "/problemset.aspx", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tags fetch failed")
		return nil, err
	}
	tags, err := parseTags(doc)
	if err != nil {
		return nil, err
	}
	c.tags = tags
	return tags, nil
}

func (c *Client) Pages(ctx context.Context) ([]judge.Page, error) {
	if c.pages != nil {
		return c.pages, nil
	}

	ctx, span := tracer.Start(ctx, "client:Pages")
	defer span.End()

	doc, err := c.getDocument(ctx, "/problemset.aspx", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pages fetch failed")
		return nil, err
	}
	pages, err := parsePages(doc)
	if err != nil {
		return nil, err
	}
	c.pages = pages
	return pages, nil
}

func (c *Client) TagByID(ctx context.Context, id string) (judge.Tag, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return judge.Tag{}, err
	}
	for _, tag := range tags {
		if strings.EqualFold(tag.ID, id) {
			return tag, nil
		}
	}
	return judge.Tag{}, judge.NotFoundError{Kind: "tag", ID: id}
}

func (c *Client) PageByID(ctx context.Context, id string) (judge.Page, error) {
	pages, err := c.Pages(ctx)
	if err != nil {
		return judge.Page{}, err
	}
	for _, page := range pages {
		if strings.EqualFold(page.ID, id) {
			return page, nil
		}
	}
	return judge.Page{}, judge.NotFoundError{Kind: "page", ID: id}
}

func (c *Client) getDocument(ctx context.Context, endpoint string, query url.Values) (*goquery.Document, error) {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	res, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("timus: fetch %s: %w", endpoint, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("timus: parse %s: %w", endpoint, err)
	}
	return doc, nil
}
