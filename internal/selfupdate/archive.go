package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
)

const checksumsAsset = "checksums.txt"

// supportedPlatforms lists the GOOS/GOARCH pairs releases are built for.
var supportedPlatforms = map[string][]string{
	"darwin":  {"amd64", "arm64"},
	"linux":   {"amd64", "arm64", "386"},
	"windows": {"amd64", "arm64"},
}

// archiveName returns the release asset for a platform, e.g.
// langbuddy_linux_amd64.tar.gz or langbuddy_windows_arm64.zip.
func archiveName(goos, goarch string) (string, error) {
	arches, ok := supportedPlatforms[goos]
	if !ok {
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	found := false
	for _, a := range arches {
		if a == goarch {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("unsupported architecture for %s: %s", goos, goarch)
	}

	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("langbuddy_%s_%s%s", goos, goarch, ext), nil
}

// binaryName is the executable inside an archive.
func binaryName(archive string) string {
	if strings.HasSuffix(archive, ".zip") {
		return "langbuddy.exe"
	}
	return "langbuddy"
}

// parseChecksums reads "<sha256>  <file>" lines as written by sha256sum.
// A leading '*' on the file name (binary mode) is ignored.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, want string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != strings.ToLower(want) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

// extractBinary pulls the executable out of a release archive.
func extractBinary(data []byte, archive string) ([]byte, error) {
	name := binaryName(archive)
	if strings.HasSuffix(archive, ".zip") {
		return fromZip(data, name)
	}
	return fromTarGz(data, name)
}

func fromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%q not found in archive", name)
}
