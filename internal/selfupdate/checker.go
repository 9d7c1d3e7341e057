package selfupdate

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner   = "abhisek"
	defaultRepo    = "langbuddy"
	defaultBaseURL = "https://api.github.com"
)

// Checker looks up releases and applies updates.
type Checker struct {
	client   *http.Client
	baseURL  string
	owner    string
	repo     string
	execPath func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at a different GitHub API host.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository selects the repository releases are read from.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) { c.execPath = f }
}

// NewChecker returns a Checker for the langbuddy repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  defaultBaseURL,
		owner:    defaultOwner,
		repo:     defaultRepo,
		execPath: os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool

	release *Release
}

// Check compares version against the latest release. Versions that are
// not valid semver, such as development builds, never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	rel, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}

	current := canonical(input.Version)
	latest := canonical(rel.TagName)
	return &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: current != "" && latest != "" && semver.Compare(latest, current) > 0,
		release:         rel,
	}, nil
}

// canonical returns v in "vX.Y.Z" form, or "" if it is not semver.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
