package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// LocalStager stores uploaded artifacts on local disk under a root directory,
// one namespace (resumes, companyLogos) per subdirectory. Paths it hands out
// are stable references relative to the root.
type LocalStager struct {
	root        string
	defaultLogo string
}

func NewLocalStager(root, defaultLogo string) *LocalStager {
	return &LocalStager{root: root, defaultLogo: defaultLogo}
}

// Save writes the upload into the namespace and returns its stable path.
// The original filename is sanitized and prefixed with a timestamp so
// repeated uploads never collide.
func (s *LocalStager) Save(namespace, filename string, src io.Reader) (string, error) {
	safeName := strings.ReplaceAll(filename, " ", "_")
	safeName = unsafeChars.ReplaceAllString(safeName, "")
	if safeName == "" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create namespace dir: %w", err)
	}

	stored := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), safeName)
	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/" + namespace + "/" + stored, nil
}

// Remove deletes a previously staged file. Callers treat failures as
// cleanup warnings, not operation failures.
func (s *LocalStager) Remove(path string) error {
	if path == "" || s.IsDefault(path) {
		return nil
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return fmt.Errorf("path %q escapes storage root", path)
	}
	return os.Remove(full)
}

// IsDefault reports whether a path is the system default logo, which is
// never deleted.
func (s *LocalStager) IsDefault(path string) bool {
	return path == s.defaultLogo || strings.Contains(path, "default-logo")
}

// DefaultLogo returns the placeholder path assigned to new employers.
func (s *LocalStager) DefaultLogo() string {
	return s.defaultLogo
}
