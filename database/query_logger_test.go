package database

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLoggerRing(t *testing.T) {
	ql := NewQueryLogger(3)
	for _, sql := range []string{"q1", "q2", "q3", "q4"} {
		ql.LogQuery(sql, time.Millisecond, 1, nil)
	}

	assert.Equal(t, 4, ql.Counter())
	queries := ql.GetQueries()
	require.Len(t, queries, 3)
	assert.Equal(t, "q4", queries[0].SQL)
	assert.Equal(t, "q2", queries[2].SQL)
	assert.Equal(t, 4, queries[0].ID)
}

func TestQueryLoggerSince(t *testing.T) {
	ql := NewQueryLogger(10)
	ql.LogQuery("before", 0, 0, nil)
	mark := ql.Counter()

	ql.LogQuery("first", 0, 0, nil)
	ql.LogQuery("second", 0, 0, errors.New("boom"))

	since := ql.Since(mark)
	require.Len(t, since, 2)
	assert.Equal(t, "second", since[0].SQL)
	assert.Equal(t, "boom", since[0].Error)
	assert.Empty(t, ql.Since(ql.Counter()))
}

func TestQueryLoggerClear(t *testing.T) {
	ql := NewQueryLogger(5)
	ql.LogQuery("q", 0, 0, nil)
	ql.Clear()

	assert.Empty(t, ql.GetQueries())
	assert.Equal(t, 1, ql.Counter())
}
