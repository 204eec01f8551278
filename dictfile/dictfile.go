// Package dictfile indexes the records of a dictionary file.
//
// A dictionary is a text of newline-separated records. The key of a record is
// the run of lowercase letters at the start of its line, optionally preceded by
// an opening bracket:
//
//	[aba]a small table...
//	abacus a counting frame
//
// Each key is inserted into a prefixtree.Tree with the byte offset of its line
// and the byte length of the line (without the line terminator).
package dictfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/aglyzov/prefixidx/prefixtree"
)

// Stats summarizes a load.
type Stats struct {
	Lines   int
	Indexed int
	Skipped int   // lines without a key
	Bytes   int64 // consumed from the reader
}

type Option func(*loader)

// WithLogger reports skipped lines at the debug level and a summary at the
// info level.
func WithLogger(log *zap.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithBufferSize sets the size of the read buffer.
func WithBufferSize(size int) Option {
	return func(l *loader) {
		if size > 0 {
			l.bufSize = size
		}
	}
}

type loader struct {
	log     *zap.Logger
	bufSize int
}

// ParseLine returns the key of a dictionary line.
func ParseLine(line string) (key string, ok bool) {
	s := strings.TrimPrefix(line, "[")

	end := 0
	for end < len(s) && s[end] >= 'a' && s[end] <= 'z' {
		end++
	}

	return s[:end], end > 0
}

// Load inserts every record of r into the tree. Both "\n" and "\r\n" line
// terminators are accepted and the last line may lack one.
func Load(ctx context.Context, r io.Reader, tree *prefixtree.Tree, opts ...Option) (Stats, error) {
	l := loader{
		log:     zap.NewNop(),
		bufSize: 64 * 1024,
	}
	for _, opt := range opts {
		opt(&l)
	}

	var (
		st  Stats
		br  = bufio.NewReaderSize(r, l.bufSize)
		pos int64
	)

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return st, fmt.Errorf("read line %d: %w", st.Lines+1, err)
		}
		if raw == "" {
			break
		}

		var (
			line   = strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			lineNo = st.Lines + 1
		)

		st.Lines++

		if key, ok := ParseLine(line); ok {
			if err := tree.Insert(key, pos, int64(len(line))); err != nil {
				return st, fmt.Errorf("index line %d: %w", lineNo, err)
			}
			st.Indexed++
		} else {
			st.Skipped++
			l.log.Debug("line without a key",
				zap.Int("line", lineNo),
				zap.Int64("position", pos),
			)
		}

		pos += int64(len(raw))
		st.Bytes = pos

		if err != nil {
			// io.EOF after a line without a terminator
			break
		}
	}

	l.log.Info("dictionary loaded",
		zap.Int("lines", st.Lines),
		zap.Int("indexed", st.Indexed),
		zap.Int("skipped", st.Skipped),
		zap.Int64("bytes", st.Bytes),
	)

	return st, nil
}

// LoadFile opens a dictionary file and loads it.
func LoadFile(ctx context.Context, path string, tree *prefixtree.Tree, opts ...Option) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	st, err := Load(ctx, f, tree, opts...)
	if err != nil {
		return st, fmt.Errorf("load %s: %w", path, err)
	}

	return st, nil
}
