package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        FeedQuery
		wantPage  int
		wantLimit int
	}{
		{"defaults", FeedQuery{}, 1, DefaultPageLimit},
		{"negative page", FeedQuery{Page: -2, Limit: 5}, 1, 5},
		{"limit capped", FeedQuery{Page: 2, Limit: 500}, 2, MaxPageLimit},
		{"huge page", FeedQuery{Page: math.MaxInt, Limit: 9}, (math.MaxInt - MaxPageLimit) / 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.GreaterOrEqual(t, q.Offset(), 0)
		})
	}
}

func TestFeedQueryOffsetDoesNotOverflow(t *testing.T) {
	q := FeedQuery{Page: math.MaxInt/9 + 2, Limit: 9}
	q.Normalize()

	offset := q.Offset()
	assert.Positive(t, offset)
	assert.LessOrEqual(t, offset, math.MaxInt-MaxPageLimit)
}
