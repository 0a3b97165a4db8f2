// Package uploads stores files received through multipart forms on local
// disk and describes them for the API.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// URLPrefix is where the HTTP layer serves the upload directory.
const URLPrefix = "/uploads"

// Upload categories.
const (
	CategoryResumes = "resumes"
	CategoryFiles   = "files"
)

// ResumeExtensions are the file types accepted for job applications.
var ResumeExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".rtf"}

// AdminExtensions are the file types admins may upload for catalogues,
// product images and media.
var AdminExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".rtf", ".csv", ".zip",
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg",
}

var (
	// ErrTooLarge is returned for files above the configured limit.
	ErrTooLarge = errors.New("uploads: file too large")
	// ErrExtension is returned for file types outside the allowed list.
	ErrExtension = errors.New("uploads: file type not allowed")
)

// File describes a stored upload.
type File struct {
	URL   string `json:"fileUrl"`
	Name  string `json:"fileName"`
	Size  string `json:"fileSize"`
	Bytes int64  `json:"-"`
}

// Store writes uploads under root/<category>/.
type Store struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

// NewStore creates root if needed. maxBytes <= 0 disables the size limit.
func NewStore(root string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create %s: %w", root, err)
	}
	return &Store{root: root, maxBytes: maxBytes, now: time.Now}, nil
}

// Root is the directory files are written to.
func (s *Store) Root() string { return s.root }

// MaxBytes is the per-file size limit.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Save copies fh into category and returns its public description. allowed
// lists lower-case extensions including the dot; nil allows any type.
func (s *Store) Save(fh *multipart.FileHeader, category string, allowed []string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if allowed != nil && !slices.Contains(allowed, ext) {
		return nil, fmt.Errorf("%w: %q", ErrExtension, ext)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge,
			humanize.Bytes(uint64(fh.Size)), humanize.Bytes(uint64(s.maxBytes)))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("uploads: open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	category = cleanSegment(category)
	if category == "" {
		category = CategoryFiles
	}
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create %s: %w", dir, err)
	}

	dst, name, err := s.create(dir, fh.Filename)
	if err != nil {
		return nil, err
	}

	n, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return nil, fmt.Errorf("uploads: write %s: %w", name, err)
	}

	return &File{
		URL:   path.Join(URLPrefix, category, name),
		Name:  fh.Filename,
		Size:  humanize.Bytes(uint64(n)),
		Bytes: n,
	}, nil
}

// create opens a new file in dir named <unix-millis>-<clean original name>,
// adding a counter if that name is already taken.
func (s *Store) create(dir, original string) (*os.File, string, error) {
	base := cleanSegment(filepath.Base(original))
	if base == "" {
		base = "upload"
	}
	stamp := s.now().UnixMilli()
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("%d-%s", stamp, base)
		if i > 0 {
			name = fmt.Sprintf("%d-%d-%s", stamp, i, base)
		}
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("uploads: create %s: %w", name, err)
		}
	}
	return nil, "", fmt.Errorf("uploads: no free name for %s", base)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// cleanSegment reduces s to a safe single path segment.
func cleanSegment(s string) string {
	s = unsafeChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	return s
}
