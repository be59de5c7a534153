// Package update checks the release feed for a newer version. It only
// ever runs when the user asks; there is no background phoning home.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cenkalti/backoff/v4"

	"github.com/vibe-cli/vibe/internal/logging"
)

const (
	// DefaultFeedURL is the release feed consulted by Check.
	DefaultFeedURL = "https://api.github.com/repos/vibe-cli/vibe/releases/latest"
	// CheckTimeout bounds one HTTP attempt.
	CheckTimeout = 10 * time.Second
	// RetryMaxAttempts is the number of retries after the first attempt.
	RetryMaxAttempts = 3
	// RetryInitialInterval is the initial interval for exponential backoff.
	RetryInitialInterval = 500 * time.Millisecond
	// RetryMaxInterval is the maximum interval between retries.
	RetryMaxInterval = 5 * time.Second
)

// Release describes the newest published version.
type Release struct {
	Version string
	URL     string
	Notes   string
	// Newer is true when the release is strictly ahead of the running
	// version. Always false when the running version is not semver,
	// such as a development build.
	Newer bool
}

// Checker queries a release feed and compares against the running
// version.
type Checker struct {
	feedURL string
	client  *http.Client
	raw     string
	current *semver.Version
}

// Option configures a Checker.
type Option func(*Checker)

// WithFeedURL points the checker at a different feed, mainly for
// tests.
func WithFeedURL(url string) Option {
	return func(c *Checker) { c.feedURL = url }
}

// NewChecker creates a checker for the given running version. A
// version that does not parse as semver disables comparison but not
// the check itself.
func NewChecker(version string, opts ...Option) *Checker {
	c := &Checker{
		feedURL: DefaultFeedURL,
		client:  &http.Client{Timeout: CheckTimeout},
		raw:     version,
	}
	if v, err := semver.NewVersion(strings.TrimPrefix(version, "v")); err == nil {
		c.current = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type releaseFeed struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

// newCheckBackoff builds the retry schedule with jitter. Client errors
// are permanent; only transport failures and server errors retry.
func newCheckBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = RetryInitialInterval
	b.MaxInterval = RetryMaxInterval
	b.RandomizationFactor = 0.5
	b.Multiplier = 2.0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, RetryMaxAttempts), ctx)
}

// Check fetches the latest release and reports whether it is newer
// than the running version.
func (c *Checker) Check(ctx context.Context) (*Release, error) {
	var feed releaseFeed

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("release feed returned %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("release feed returned %s", resp.Status))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &feed); err != nil {
			return backoff.Permanent(fmt.Errorf("decode release feed: %w", err))
		}
		return nil
	}

	if err := backoff.Retry(op, newCheckBackoff(ctx)); err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}

	release := &Release{
		Version: strings.TrimPrefix(feed.TagName, "v"),
		URL:     feed.HTMLURL,
		Notes:   feed.Body,
	}

	latest, err := semver.NewVersion(release.Version)
	if err != nil {
		return nil, fmt.Errorf("release feed tag %q is not semver", feed.TagName)
	}
	if c.current == nil {
		logging.Debug().Str("version", c.raw).Msg("running version is not semver, skipping comparison")
		return release, nil
	}
	release.Newer = latest.GreaterThan(c.current)
	return release, nil
}
