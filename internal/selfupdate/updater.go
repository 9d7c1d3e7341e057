package selfupdate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no build for this platform")
)

// maxDownload caps a single release download.
const maxDownload = 256 << 20

type UpdateInput struct {
	CurrentVersion string

	// TargetVersion pins a release tag; empty means the latest.
	TargetVersion string
}

// UpdateProgress is reported at each stage: check, download, verify,
// extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update downloads the release archive for this platform, verifies it
// against the release's checksums.txt and swaps it in for the running
// executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if canonical(input.CurrentVersion) == "" {
		return ErrDevBuild
	}

	rel, err := c.resolveRelease(ctx, input, progress)
	if err != nil {
		return err
	}

	archive, err := archiveName(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	return c.install(ctx, rel, archive, progress)
}

func (c *Checker) resolveRelease(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (*Release, error) {
	if input.TargetVersion != "" {
		progress(UpdateProgress{Stage: "check", Message: fmt.Sprintf("Looking up %s...", input.TargetVersion)})
		rel, err := c.releaseByTag(ctx, input.TargetVersion)
		if err != nil {
			return nil, fmt.Errorf("look up %s: %w", input.TargetVersion, err)
		}
		return rel, nil
	}

	progress(UpdateProgress{Stage: "check", Message: "Checking for latest version..."})
	result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return nil, ErrAlreadyLatest
	}
	return result.release, nil
}

func (c *Checker) install(ctx context.Context, rel *Release, archive string, progress func(UpdateProgress)) error {
	asset, ok := rel.Asset(archive)
	if !ok {
		return fmt.Errorf("%w: %s missing from %s", ErrNoAsset, archive, rel.TagName)
	}
	sumsAsset, ok := rel.Asset(checksumsAsset)
	if !ok {
		return fmt.Errorf("%s missing from %s", checksumsAsset, rel.TagName)
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", rel.TagName)})
	data, err := c.download(ctx, asset.DownloadURL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying checksum..."})
	sumsData, err := c.download(ctx, sumsAsset.DownloadURL)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sumsData)[archive]
	if !ok {
		return fmt.Errorf("no checksum for %s", archive)
	}
	if err := verifyChecksum(data, want); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Extracting binary..."})
	bin, err := extractBinary(data, archive)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Applying update..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if err := replaceExecutable(target, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", rel.TagName)})
	return nil
}

func (c *Checker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxDownload)
	}
	return data, nil
}

// replaceExecutable writes bin next to target and renames it over target,
// keeping target's permissions. The staged copy is re-hashed before the
// rename.
func replaceExecutable(target string, bin []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := os.CreateTemp(filepath.Dir(target), ".langbuddy-update-*")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	if _, err := staged.Write(bin); err != nil {
		_ = staged.Close()
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	written, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read staging file: %w", err)
	}
	want := sha256.Sum256(bin)
	got := sha256.Sum256(written)
	if !bytes.Equal(want[:], got[:]) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Chmod(stagedPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
