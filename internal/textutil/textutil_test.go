package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"safe input untouched", "safe-file.txt", "safe-file.txt"},
		{"escape sequence", "bad\x1b[31m\npath", "bad?[31m path"},
		{"right to left override", "evil\u202etxt.exe", "evil<RLO>txt.exe"},
		{"zero width space", "a\u200bb", "a<ZWSP>b"},
		{"delete char", "x\x7fy", "x?y"},
		{"tab becomes space", "a\tb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a   b", ExpandTabs("a\tb", 4))
	assert.Equal(t, "abcd    e", ExpandTabs("abcd\te", 4))
	assert.Equal(t, "no tabs", ExpandTabs("no tabs", 4))
	assert.Equal(t, "a\tb", ExpandTabs("a\tb", 0))
}

func TestWidthCountsWideRunes(t *testing.T) {
	assert.Equal(t, 5, Width("hello"))
	assert.Equal(t, 4, Width("日本"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long…", Truncate("longer name", 5))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.LessOrEqual(t, Width(Truncate("日本語のファイル", 5)), 5)
}

func TestFitPadsAndTruncates(t *testing.T) {
	assert.Equal(t, "ab   ", Fit("ab", 5))
	assert.Equal(t, "abcd…", Fit("abcdefgh", 5))
}

func TestDisplayLine(t *testing.T) {
	assert.Equal(t, "x   y?", DisplayLine("x\ty\x1b", 20))
}
