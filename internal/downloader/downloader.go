package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
	apphttp "github.com/appdotbuilder/tele-vid-downloader/pkg/http"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Result describes a materialized file
type Result struct {
	FilePath string
	FileSize int64
}

// Downloader streams remote media into a local directory ahead of delivery
type Downloader struct {
	dir        string
	httpClient *http.Client
}

// New creates a downloader writing into dir
func New(dir string, timeout time.Duration) *Downloader {
	return &Downloader{
		dir:        dir,
		httpClient: apphttp.NewClient(timeout),
	}
}

// SanitizeFileName restricts a filename to an allow-listed character set and
// strips path traversal sequences.
func SanitizeFileName(name string) string {
	// Drop any directory component before filtering characters
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "download"
	}
	return name
}

// Download streams the resolved URL to a sanitized local path and records the
// resulting byte size. Any HTTP failure or missing response body yields an
// explicit error; a partially written file is removed and never reported as a
// success.
func (d *Downloader) Download(ctx context.Context, downloadURL, fileName string) (*Result, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, &apperrors.IOError{Message: "failed to create downloads directory", Err: err}
	}

	filePath := filepath.Join(d.dir, SanitizeFileName(fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "failed to build download request", Err: err}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "download request failed", Err: err}
	}
	defer apphttp.CloseResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.DependencyError{
			Message: fmt.Sprintf("download failed with status %d", resp.StatusCode),
		}
	}
	if resp.Body == nil {
		return nil, &apperrors.DependencyError{Message: "no response body received"}
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, &apperrors.IOError{Message: "failed to create local file", Err: err}
	}

	size, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil || closeErr != nil {
		os.Remove(filePath)
		if err == nil {
			err = closeErr
		}
		return nil, &apperrors.IOError{Message: "failed to write local file", Err: err}
	}

	return &Result{FilePath: filePath, FileSize: size}, nil
}

// Cleanup deletes a materialized file. A file that is already absent counts as
// success; only genuine I/O failures are reported.
func (d *Downloader) Cleanup(filePath string) error {
	err := os.Remove(filePath)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return &apperrors.IOError{Message: "failed to remove local file", Err: err}
}
