// Package dump contains the source file handling and the read-only mode
// drivers (analyze, validate, extract, split).
package dump

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"dumptool/internal/logging"
	"dumptool/internal/report"

	"golang.org/x/text/encoding/ianaindex"
)

var log = logging.GetLogger()

// SourceFile is the dump input after gzip handling. When the original was
// compressed, Path points at a temporary plain-text copy that Cleanup
// removes; an uncompressed original is never touched.
type SourceFile struct {
	Path     string
	original string
	encoding string
	temp     bool
}

// OpenSource validates the input path and decompresses a .gz dump to a
// sibling file with the suffix stripped. Fails fast on missing or non-regular
// files before any mode work starts.
func OpenSource(path, encoding string) (*SourceFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file '%s' not found", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("'%s' is not a regular file", path)
	}

	src := &SourceFile{Path: path, original: path, encoding: encoding}
	if strings.HasSuffix(path, ".gz") {
		log.Debugf("Decompressing gzip file %s", path)
		plain := strings.TrimSuffix(path, ".gz")
		if err := decompress(path, plain); err != nil {
			return nil, err
		}
		src.Path = plain
		src.temp = true
	}
	return src, nil
}

func decompress(gzPath, outPath string) error {
	in, err := os.Open(gzPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", gzPath, err)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("failed to read gzip stream from %s: %w", gzPath, err)
	}
	defer gz.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, gz); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to decompress %s: %w", gzPath, err)
	}
	return nil
}

// Info captures size and modification time of the file being read.
func (s *SourceFile) Info() (report.FileInfo, error) {
	fi, err := os.Stat(s.Path)
	if err != nil {
		return report.FileInfo{}, fmt.Errorf("failed to stat %s: %w", s.Path, err)
	}
	size := fi.Size()
	return report.FileInfo{
		Path:      s.Path,
		SizeBytes: size,
		SizeMB:    float64(size) / (1024 * 1024),
		SizeGB:    float64(size) / (1024 * 1024 * 1024),
		Modified:  fi.ModTime(),
	}, nil
}

// Open returns a reader over the plain-text content, decoded from the
// configured encoding when it is not UTF-8.
func (s *SourceFile) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	r, err := decodeReader(f, s.encoding)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &decodedFile{Reader: r, f: f}, nil
}

type decodedFile struct {
	io.Reader
	f *os.File
}

func (d *decodedFile) Close() error { return d.f.Close() }

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
	return enc.NewDecoder().Reader(r), nil
}

// Cleanup removes the temporary decompressed copy. Removal failures are
// logged, never escalated.
func (s *SourceFile) Cleanup() {
	if !s.temp {
		return
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to remove temporary file %s: %v", s.Path, err)
		return
	}
	log.Debugf("Removed temporary file %s", s.Path)
}
