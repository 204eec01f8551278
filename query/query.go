// Package query answers prefix questions about an indexed dictionary.
//
// For every word read from the input a Session prints either
//
//	<word> is prefix of <n> words
//	<word> is at (<position>,<length>)   (only when the word is a record)
//
// or
//
//	<word> is not prefix
//
// Reading stops at EOF or at the sentinel word ("0" by default).
package query

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aglyzov/prefixidx/prefixtree"
)

const DefaultSentinel = "0"

// Result is the answer for a single word.
type Result struct {
	Word  string
	Count int // records extending the word
	Found bool
	Entry prefixtree.Entry
}

// WriteTo prints the result in the session format.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	var (
		n   int
		err error
	)

	switch {
	case r.Count == 0:
		n, err = fmt.Fprintf(w, "%s is not prefix\n", r.Word)

	case r.Found:
		n, err = fmt.Fprintf(w, "%s is prefix of %d words\n%s is at (%d,%d)\n",
			r.Word, r.Count, r.Word, r.Entry.Position, r.Entry.Length)

	default:
		n, err = fmt.Fprintf(w, "%s is prefix of %d words\n", r.Word, r.Count)
	}

	return int64(n), err
}

type Option func(*Session)

func WithSentinel(word string) Option {
	return func(s *Session) {
		if word != "" {
			s.sentinel = word
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

type Session struct {
	tree     *prefixtree.Tree
	out      io.Writer
	sentinel string
	log      *zap.Logger
}

func NewSession(tree *prefixtree.Tree, out io.Writer, opts ...Option) *Session {
	s := &Session{
		tree:     tree,
		out:      out,
		sentinel: DefaultSentinel,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Answer queries the tree without printing anything.
func (s *Session) Answer(word string) Result {
	r := Result{
		Word:  word,
		Count: s.tree.PrefixCount(word),
	}
	r.Entry, r.Found = s.tree.Lookup(word)

	return r
}

// NewWordScanner splits the input into whitespace-separated words.
func NewWordScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	return sc
}

// Run answers the words of the input.
func (s *Session) Run(in io.Reader) error {
	return s.Scan(NewWordScanner(in))
}

// Scan answers the words of a scanner until the sentinel or EOF.
func (s *Session) Scan(sc *bufio.Scanner) error {
	var answered, found int

	for sc.Scan() {
		word := sc.Text()
		if word == s.sentinel {
			break
		}

		r := s.Answer(word)
		if _, err := r.WriteTo(s.out); err != nil {
			return fmt.Errorf("write answer for %q: %w", word, err)
		}

		answered++
		if r.Found {
			found++
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read words: %w", err)
	}

	s.log.Debug("query session finished",
		zap.Int("answered", answered),
		zap.Int("found", found),
	)

	return nil
}
