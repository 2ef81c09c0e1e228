package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Split partitions the dump into files of linesPerFile raw physical lines,
// written to dir as part_0001.sql, part_0002.sql, ... in order. It works on
// raw lines, not statements: a multi-line statement may be cut across two
// parts. Concatenating the parts in order reproduces the input byte for byte.
func Split(r io.Reader, dir string, linesPerFile int, progress func(n int)) (int, error) {
	if linesPerFile <= 0 {
		return 0, fmt.Errorf("lines per file must be positive, got %d", linesPerFile)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	br := bufio.NewReader(r)
	var out *bufio.Writer
	var f *os.File
	parts := 0
	lines := 0

	closePart := func() error {
		if f == nil {
			return nil
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to flush part %d: %w", parts, err)
		}
		err := f.Close()
		f = nil
		return err
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			closePart()
			return parts, err
		}
		if line != "" {
			if lines%linesPerFile == 0 {
				if cerr := closePart(); cerr != nil {
					return parts, cerr
				}
				parts++
				path := filepath.Join(dir, fmt.Sprintf("part_%04d.sql", parts))
				nf, cerr := os.Create(path)
				if cerr != nil {
					return parts, fmt.Errorf("failed to create %s: %w", path, cerr)
				}
				f = nf
				out = bufio.NewWriter(f)
				log.Debugf("Creating part %d: %s", parts, path)
			}
			if _, werr := out.WriteString(line); werr != nil {
				closePart()
				return parts, fmt.Errorf("failed to write part %d: %w", parts, werr)
			}
			lines++
			if progress != nil {
				progress(len(line))
			}
		}
		if err == io.EOF {
			break
		}
	}

	if err := closePart(); err != nil {
		return parts, err
	}
	return parts, nil
}
