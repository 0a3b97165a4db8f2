package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader by parsing a form.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newStore(t *testing.T, max int64) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), max)
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestSave_Resume(t *testing.T) {
	s := newStore(t, 1<<20)
	content := bytes.Repeat([]byte("a"), 2048)

	f, err := s.Save(fileHeader(t, "My CV (final).pdf", content), CategoryResumes, ResumeExtensions)
	require.NoError(t, err)

	assert.Equal(t, "/uploads/resumes/1700000000000-My-CV-final-.pdf", f.URL)
	assert.Equal(t, "My CV (final).pdf", f.Name)
	assert.Equal(t, "2.0 kB", f.Size)
	assert.EqualValues(t, 2048, f.Bytes)

	onDisk, err := os.ReadFile(filepath.Join(s.Root(), "resumes", "1700000000000-My-CV-final-.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestSave_SameNameTwice(t *testing.T) {
	s := newStore(t, 0)
	a, err := s.Save(fileHeader(t, "cv.pdf", []byte("1")), CategoryResumes, nil)
	require.NoError(t, err)
	b, err := s.Save(fileHeader(t, "cv.pdf", []byte("2")), CategoryResumes, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.URL, b.URL)
}

func TestSave_RejectsExtension(t *testing.T) {
	s := newStore(t, 0)
	_, err := s.Save(fileHeader(t, "run.exe", []byte("MZ")), CategoryResumes, ResumeExtensions)
	assert.ErrorIs(t, err, ErrExtension)
}

func TestSave_RejectsLargeFile(t *testing.T) {
	s := newStore(t, 10)
	_, err := s.Save(fileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 11)), CategoryResumes, ResumeExtensions)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSave_CategoryCannotEscapeRoot(t *testing.T) {
	s := newStore(t, 0)
	f, err := s.Save(fileHeader(t, "../../etc/passwd.txt", []byte("x")), "../../tmp", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.URL, "/uploads/tmp/"), f.URL)
	assert.NotContains(t, f.URL, "..")
}
