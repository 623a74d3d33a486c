package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// HeaderScanLimit is the maximum number of bytes discarded when skipping a
// header line that has no terminator within reach.
const HeaderScanLimit = 256

// CannotOpenFileError reports a file that could not be opened for reading.
// It is distinct from a file that opens fine but is empty.
type CannotOpenFileError struct {
	Path string
	Err  error
}

func (e *CannotOpenFileError) Error() string {
	return fmt.Sprintf("cannot open file %s: %v", e.Path, e.Err)
}

func (e *CannotOpenFileError) Unwrap() error {
	return e.Err
}

// IsCannotOpenFile reports whether err is, or wraps, a CannotOpenFileError
func IsCannotOpenFile(err error) bool {
	var target *CannotOpenFileError
	return errors.As(err, &target)
}

// Reader loads file contents from a filesystem
type Reader struct {
	fs        afero.Fs
	scanLimit int
}

// NewReader creates a reader over fs. A nil fs reads from the OS.
func NewReader(fs afero.Fs) *Reader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Reader{fs: fs, scanLimit: HeaderScanLimit}
}

var osReader = NewReader(nil)

// Contents reads path from the OS filesystem.
// See (*Reader).Contents.
func Contents(path string, skipHeader bool) (string, error) {
	return osReader.Contents(path, skipHeader)
}

// Contents returns everything in path as a string. With skipHeader set the
// first line, including its '\n', is dropped; if no '\n' shows up within
// HeaderScanLimit bytes, exactly that many bytes are dropped instead.
func (r *Reader) Contents(path string, skipHeader bool) (string, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return "", &CannotOpenFileError{Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if skipHeader {
		if err := discardLine(br, r.scanLimit); err != nil {
			return "", fmt.Errorf("skipping header of %s: %w", path, err)
		}
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

// discardLine consumes bytes up to and including the first '\n', reading at
// most limit bytes. Hitting EOF early is not an error.
func discardLine(br *bufio.Reader, limit int) error {
	for i := 0; i < limit; i++ {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
	return nil
}

// Files lists the regular files below root as slash-separated paths relative
// to root, in lexical order. Hidden files and directories are skipped.
func (r *Reader) Files(root string) ([]string, error) {
	var files []string

	err := afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != root && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	return files, nil
}

// IsDir reports whether path names a directory
func (r *Reader) IsDir(path string) (bool, error) {
	return afero.IsDir(r.fs, path)
}
