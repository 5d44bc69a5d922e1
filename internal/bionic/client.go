package bionic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultHost is the provider host sent in X-RapidAPI-Host.
const DefaultHost = "bionic-reading1.p.rapidapi.com"

const maxResponseBytes = 8 << 20

// ErrResponseTooLarge is wrapped when the provider body exceeds the read limit.
var ErrResponseTooLarge = errors.New("response exceeds size limit")

// HTTPTransformer calls the remote bionic reading provider.
type HTTPTransformer struct {
	endpoint string
	host     string
	apiKey   string
	client   *http.Client
	logger   *logrus.Entry
}

// ClientOption configures an HTTPTransformer.
type ClientOption func(*HTTPTransformer)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(t *HTTPTransformer) { t.client = c }
}

// WithHost overrides the X-RapidAPI-Host header.
func WithHost(host string) ClientOption {
	return func(t *HTTPTransformer) { t.host = host }
}

// NewHTTPTransformer creates a transformer posting to {endpoint}/convert.
func NewHTTPTransformer(endpoint, apiKey string, logger *logrus.Entry, opts ...ClientOption) *HTTPTransformer {
	t := &HTTPTransformer{
		endpoint: strings.TrimRight(endpoint, "/"),
		host:     DefaultHost,
		apiKey:   apiKey,
		client:   &http.Client{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HTTPTransformer) Transform(ctx context.Context, content string, controls Controls) (string, error) {
	form := url.Values{}
	form.Set("content", content)
	form.Set("response_type", "html")
	form.Set("request_type", "html")
	form.Set("fixation", strconv.Itoa(controls.Fixation))
	form.Set("saccade", strconv.Itoa(controls.Saccade))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/convert", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TransformationError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-RapidAPI-Host", t.host)
	req.Header.Set("X-RapidAPI-Key", t.apiKey)

	log := t.logger.WithFields(logrus.Fields{
		"fixation": controls.Fixation,
		"saccade":  controls.Saccade,
		"bytes":    len(content),
	})

	resp, err := t.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Bionic provider request failed")
		return "", &TransformationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", &TransformationError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}
	// A cut body could end mid-tag, so it is never used.
	if len(body) > maxResponseBytes {
		log.WithField("status", resp.StatusCode).Warn("Bionic provider response too large")
		return "", &TransformationError{StatusCode: resp.StatusCode, Err: ErrResponseTooLarge}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("Bionic provider returned an error")
		return "", &TransformationError{StatusCode: resp.StatusCode, Err: fmt.Errorf("provider returned %s: %s", resp.Status, truncate(string(body), 200))}
	}

	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && strings.Contains(mt, "json") {
		return "", &TransformationError{StatusCode: resp.StatusCode, Err: fmt.Errorf("provider returned %s instead of markup", mt)}
	}

	markup := string(body)
	if err := ValidateMarkup(markup); err != nil {
		return "", &TransformationError{StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug("Bionic provider responded")
	return markup, nil
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
