package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinName is the conventional source name for standard input.
const StdinName = "-"

// maxLineSize bounds a single note line.
const maxLineSize = 1024 * 1024

// Source provides raw note text.
type Source interface {
	// Name identifies the source in reports (a path or "-").
	Name() string

	// ReadAll returns the full text of the source.
	ReadAll(ctx context.Context) (string, error)
}

// FileSource reads notes from a file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a Source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// ReadAll reads the whole file.
func (s *FileSource) ReadAll(ctx context.Context) (string, error) {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", fmt.Errorf("opening notes file %s: %w", s.path, err)
	}
	defer f.Close()

	return readLines(ctx, s.path, f)
}

// ReaderSource reads notes from an arbitrary reader, typically stdin.
type ReaderSource struct {
	name string
	r    io.Reader
}

// NewReaderSource creates a Source backed by r.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

// Name returns the configured source name.
func (s *ReaderSource) Name() string {
	return s.name
}

// ReadAll drains the reader.
func (s *ReaderSource) ReadAll(ctx context.Context) (string, error) {
	return readLines(ctx, s.name, s.r)
}

// ReadSources reads every source in order and joins their text with newlines.
func ReadSources(ctx context.Context, sources ...Source) (string, error) {
	texts := make([]string, 0, len(sources))
	for _, src := range sources {
		text, err := src.ReadAll(ctx)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n"), nil
}

func readLines(ctx context.Context, name string, r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var b strings.Builder
	first := true
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	return b.String(), nil
}
