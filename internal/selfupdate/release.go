// Package selfupdate replaces the running langbuddy binary with the latest
// GitHub release.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoRelease is returned when the repository has no matching release.
var ErrNoRelease = errors.New("release not found")

// Release is the subset of the GitHub release object we use.
type Release struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Asset returns the asset called name.
func (r *Release) Asset(name string) (Asset, bool) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// latestRelease fetches the newest published release.
func (c *Checker) latestRelease(ctx context.Context) (*Release, error) {
	return c.fetchRelease(ctx, "latest")
}

// releaseByTag fetches the release tagged tag.
func (c *Checker) releaseByTag(ctx context.Context, tag string) (*Release, error) {
	return c.fetchRelease(ctx, "tags/"+url.PathEscape(tag))
}

func (c *Checker) fetchRelease(ctx context.Context, which string) (*Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/%s", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo, which)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoRelease
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GitHub API returned HTTP %d", resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("decode release: missing tag_name")
	}
	return &rel, nil
}
