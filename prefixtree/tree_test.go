package prefixtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tr := New()

	assert.NotNil(t, tr)
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Keys())
	assert.NotNil(t, tr.Keys())
	assert.NoError(t, tr.Verify())

	tr = New(Entry{"car", 0, 10}, Entry{"cat", 11, 20})

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []string{"car", "cat"}, tr.Keys())

	assert.Panics(t, func() { New(Entry{"Car", 0, 10}) })
}

func TestInsert_InvalidInput(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"abc", 1, 1})

	for _, tcase := range []*struct {
		Key      string
		Position int64
		Length   int64
	}{
		{"", 0, 1},
		{"ABC", 0, 1},
		{"abC", 0, 1},
		{"ab c", 0, 1},
		{"abc1", 0, 1},
		{"\x00", 0, 1},
		{"été", 0, 1},
		{"abc", 0, 0},
		{"abc", 0, -5},
		{"abd", -1, 1},
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%#v,%d,%d", tcase.Key, tcase.Position, tcase.Length)
		)

		t.Run(name, func(t *testing.T) {
			err := tr.Insert(tcase.Key, tcase.Position, tcase.Length)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// nothing has changed
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, []Entry{{"abc", 1, 1}}, tr.Entries())
	assert.NoError(t, tr.Verify())
}

func TestInsert_Lookup(t *testing.T) {
	t.Parallel()

	var (
		tr    = New()
		state = map[string]Entry{}
	)

	for _, tcase := range []*struct {
		Key      string
		Position int64
		Length   int64
	}{
		{"a", 0, 3},
		{"abc", 4, 11},
		{"ab", 16, 7},
		{"zzz", 24, 1},
		{"abc", 100, 42}, // overwrite
		{"abcdefghijklmnopqrstuvwxyz", 143, 26},
		{"z", 170, 9},
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%#v,%d,%d", tcase.Key, tcase.Position, tcase.Length)
		)

		t.Run(name, func(t *testing.T) {
			require.NoError(t, tr.Insert(tcase.Key, tcase.Position, tcase.Length))
			state[tcase.Key] = Entry{tcase.Key, tcase.Position, tcase.Length}

			for key, exp := range state {
				assert.True(t, tr.Contains(key), key)
				assert.Equal(t, exp.Position, tr.Position(key), key)
				assert.Equal(t, exp.Length, tr.Length(key), key)

				entry, ok := tr.Lookup(key)

				assert.True(t, ok, key)
				assert.Equal(t, exp, entry)
			}

			assert.NoError(t, tr.Verify())
		})
	}
}

func TestQueries_Missing(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"abc", 1, 1}, Entry{"abd", 2, 2})

	for _, key := range []string{"", "a", "ab", "abcd", "abe", "x", "xyz", "ABC", "ab!"} {
		key := key

		t.Run(fmt.Sprintf("%#v", key), func(t *testing.T) {
			assert.False(t, tr.Contains(key))
			assert.Equal(t, NoPosition, tr.Position(key))
			assert.Equal(t, int64(0), tr.Length(key))

			_, ok := tr.Lookup(key)

			assert.False(t, ok)
		})
	}
}

func TestPrefixCount(t *testing.T) {
	t.Parallel()

	tr := New(
		Entry{"car", 0, 4},
		Entry{"cat", 5, 4},
		Entry{"cap", 10, 4},
		Entry{"ca", 15, 3},
		Entry{"dog", 19, 4},
	)

	for _, tcase := range []*struct {
		Prefix   string
		ExpCount int
	}{
		{"", 0},
		{"c", 4},
		{"ca", 4},
		{"car", 1},
		{"cars", 0},
		{"d", 1},
		{"do", 1},
		{"e", 0},
		{"C", 0},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%#v", tcase.Prefix), func(t *testing.T) {
			before := tr.PrefixCount(tcase.Prefix)

			assert.Equal(t, tcase.ExpCount, before)

			// queries must not change anything
			tr.Contains(tcase.Prefix)
			tr.Position(tcase.Prefix)
			tr.Keys()

			assert.Equal(t, before, tr.PrefixCount(tcase.Prefix))
		})
	}
}

func TestScenario_InsertRemove(t *testing.T) {
	t.Parallel()

	tr := New()

	require.NoError(t, tr.Insert("abc", 1, 1))
	assert.True(t, tr.Contains("abc"))

	require.NoError(t, tr.Remove("abc"))
	assert.False(t, tr.Contains("abc"))
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.PrefixCount("a"))
	assert.Equal(t, Stats{}, tr.Stats())
	assert.NoError(t, tr.Verify())
}

func TestScenario_SharedPrefix(t *testing.T) {
	t.Parallel()

	tr := New()

	require.NoError(t, tr.Insert("car", 0, 12))
	require.NoError(t, tr.Insert("cat", 13, 30))
	require.NoError(t, tr.Insert("cap", 44, 7))

	assert.Equal(t, 3, tr.PrefixCount("ca"))
	assert.False(t, tr.Contains("ca"))
	assert.Equal(t, []string{"cap", "car", "cat"}, tr.Keys())
	assert.Equal(t, []Entry{
		{"cap", 44, 7},
		{"car", 0, 12},
		{"cat", 13, 30},
	}, tr.Entries())
}

func TestScenario_RemoveInnerRecord(t *testing.T) {
	t.Parallel()

	tr := New()

	require.NoError(t, tr.Insert("cat", 0, 3))
	require.NoError(t, tr.Insert("cats", 4, 4))

	require.NoError(t, tr.Remove("cat"))

	assert.True(t, tr.Contains("cats"))
	assert.False(t, tr.Contains("cat"))
	assert.Equal(t, int64(4), tr.Position("cats"))
	assert.Equal(t, 1, tr.PrefixCount("cat"))
	assert.Equal(t, 1, tr.Len())
	assert.NoError(t, tr.Verify())
}

func TestScenario_UnknownFirstLetter(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"abc", 5, 6})

	assert.Equal(t, NoPosition, tr.Position("xyz"))
	assert.Equal(t, int64(0), tr.Length("xyz"))
	assert.Equal(t, NoPosition, New().Position("xyz"))
}

func TestKeyOrder(t *testing.T) {
	t.Parallel()

	for i, tcase := range []*struct {
		Ins []string
		Res []string
	}{
		{
			[]string{"x", "y", "z", "c", "c", "b", "b", "a", "a"},
			[]string{"a", "b", "c", "x", "y", "z"},
		},
		{
			[]string{"aaa", "aa", "a"},
			[]string{"a", "aa", "aaa"},
		},
		{
			[]string{"b", "a", "aa"},
			[]string{"a", "aa", "b"},
		},
		{
			[]string{"bbb", "bba", "bb", "ba", "ab", "aab", "aaa", "aa"},
			[]string{"aa", "aaa", "aab", "ab", "ba", "bb", "bba", "bbb"},
		},
	} {
		tcase := tcase

		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tr := New()

			for pos, key := range tcase.Ins {
				require.NoError(t, tr.Insert(key, int64(pos), 1))
			}

			assert.Equal(t, tcase.Res, tr.Keys())
			assert.Equal(t, len(tcase.Ins), tr.Len())
			require.NoError(t, tr.Verify())

			// remove every insert in reverse order
			for j := len(tcase.Ins) - 1; j >= 0; j-- {
				require.NoError(t, tr.Remove(tcase.Ins[j]), tcase.Ins[j])
				require.NoError(t, tr.Verify())
				assert.Equal(t, j, tr.Len())
			}

			assert.True(t, tr.Empty())
			assert.Empty(t, tr.Keys())
		})
	}
}

func TestIter(t *testing.T) {
	t.Parallel()

	var (
		tr   = New()
		keys = []string{"aa", "aaa", "aab", "ab", "ba", "bb", "bba", "bbb"}
	)

	for i, key := range keys {
		require.NoError(t, tr.Insert(key, int64(i), 5))
	}

	for _, tcase := range []*struct {
		Prefix  string
		ExpKeys []string
	}{
		{"", keys},
		{"a", []string{"aa", "aaa", "aab", "ab"}},
		{"aa", []string{"aa", "aaa", "aab"}},
		{"aaa", []string{"aaa"}},
		{"aaaa", nil},
		{"c", nil},
		{"A", nil},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%#v", tcase.Prefix), func(t *testing.T) {
			var got []string

			done := tr.Iter(tcase.Prefix, func(e Entry) bool {
				got = append(got, e.Key)
				assert.Equal(t, int64(5), e.Length)
				return true
			})

			assert.True(t, done)
			assert.Equal(t, tcase.ExpKeys, got)
		})
	}
}

func TestIter_Abort(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"a", 0, 1}, Entry{"ab", 2, 2}, Entry{"abc", 5, 3}, Entry{"b", 9, 1})

	var got []string

	done := tr.Iter("", func(e Entry) bool {
		got = append(got, e.Key)
		return len(got) < 2
	})

	assert.False(t, done)
	assert.Equal(t, []string{"a", "ab"}, got)
}

func TestClear(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"one", 0, 4}, Entry{"two", 4, 4}, Entry{"three", 8, 6})

	tr.Clear()

	assert.True(t, tr.Empty())
	assert.Empty(t, tr.Keys())
	assert.Equal(t, 0, tr.PrefixCount("t"))
	assert.NoError(t, tr.Verify())

	require.NoError(t, tr.Insert("two", 1, 1))
	assert.Equal(t, []string{"two"}, tr.Keys())
}

func TestStats(t *testing.T) {
	t.Parallel()

	tr := New(Entry{"car", 0, 4}, Entry{"cat", 5, 4}, Entry{"cap", 10, 4})

	assert.Equal(t, Stats{
		Nodes:    5,
		Records:  3,
		Leaves:   3,
		Branches: 1,
		Edges:    4,
		MaxDepth: 3,
	}, tr.Stats())

	require.NoError(t, tr.Insert("dog", 15, 4))

	st := tr.Stats()

	assert.Equal(t, 8, st.Nodes)
	assert.Equal(t, 4, st.Records)
	assert.Equal(t, 6, st.Edges)
}
