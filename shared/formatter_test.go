package shared

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestEllipticalTruncate(t *testing.T) {
	assert.Equal(t, "…", TruncateWithEllipsis("1 2 3", 0))
	assert.Equal(t, "1…", TruncateWithEllipsis("1 2 3", 1))
	assert.Equal(t, "1…", TruncateWithEllipsis("1 2 3", 2))
	assert.Equal(t, "1 2…", TruncateWithEllipsis("1 2 3", 3))
	assert.Equal(t, "1 2 3", TruncateWithEllipsis("1 2 3", 5))
}

func TestWithinTextLimit(t *testing.T) {
	assert.True(t, WithinTextLimit("", 0))
	assert.True(t, WithinTextLimit("hello", 5))
	assert.False(t, WithinTextLimit("hello!", 5))
	// Counted in runes, not bytes
	assert.True(t, WithinTextLimit("héllő", 5))
	assert.True(t, WithinTextLimit("絵文字テスト", 6))
	assert.False(t, WithinTextLimit("絵文字テスト!", 6))
}

func TestJoinSplitIds(t *testing.T) {
	assert.Equal(t, "1,22,333", JoinIds([]int64{1, 22, 333}, ","))
	assert.Equal(t, "", JoinIds(nil, ","))
	assert.Equal(t, []int64{1, 22, 333}, SplitIds("1,22,333", ","))
	assert.Nil(t, SplitIds("", ","))
	assert.Equal(t, []int64{4, 5}, SplitIds("4,x,5,", ","))
}
