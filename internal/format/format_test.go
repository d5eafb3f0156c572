package format

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/rune-lang/rune/internal/errors"
)

func TestSourceCanonicalizes(t *testing.T) {
	res, err := Source("let   x=1+2*3\nprint( x )")
	require.NoError(t, err)
	assert.Equal(t, "let x = (1 + (2 * 3));\nprint(x)\n", res.Formatted)
	assert.True(t, res.Changed())

	again, err := Source(res.Formatted)
	require.NoError(t, err)
	assert.False(t, again.Changed())
}

func TestSourceEmpty(t *testing.T) {
	res, err := Source("")
	require.NoError(t, err)
	assert.False(t, res.Changed())
}

func TestSourceParseError(t *testing.T) {
	res, err := Source("let x = (1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, rerrors.ErrExpectedAfter))
	assert.False(t, res.Changed())
}

func TestSourceWithDiff(t *testing.T) {
	src := "let a = 1;\nlet b = 2;\nprint(a+b)\n"
	res, diff, err := SourceWithDiff("main.rn", src, DefaultDiffOptions())
	require.NoError(t, err)
	assert.True(t, res.Changed())

	want := "--- main.rn\t(original)\n" +
		"+++ main.rn\t(formatted)\n" +
		"@@ -1,3 +1,3 @@\n" +
		" let a = 1;\n" +
		" let b = 2;\n" +
		"-print(a+b)\n" +
		"+print((a + b))\n"
	assert.Equal(t, want, diff)

	_, diff, err = SourceWithDiff("main.rn", res.Formatted, DefaultDiffOptions())
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestGenerateDiff(t *testing.T) {
	original := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n"
	modified := "a\nB\nc\nd\ne\nf\ng\nh\ni\nj\nk\n"

	df := NewDiffFormatter(DiffOptions{Context: 1})
	result := df.GenerateDiff(original, modified)

	require.True(t, result.HasChanges)
	require.Len(t, result.Hunks, 2)
	assert.Equal(t, DiffStat{LinesAdded: 2, LinesRemoved: 1}, result.Stats)

	assert.Equal(t, "@@ -1,3 +1,3 @@", result.Hunks[0].Header())
	assert.Equal(t, "@@ -10 +10,2 @@", result.Hunks[1].Header())
}

func TestGenerateDiffMergesNearbyChanges(t *testing.T) {
	df := NewDiffFormatter(DiffOptions{Context: 2})
	result := df.GenerateDiff("1\n2\n3\n4\n5\n", "x\n2\n3\n4\ny\n")

	require.Len(t, result.Hunks, 1)
	assert.Equal(t, "@@ -1,5 +1,5 @@", result.Hunks[0].Header())
}

func TestGenerateDiffFromEmpty(t *testing.T) {
	df := NewDiffFormatter(DefaultDiffOptions())
	result := df.GenerateDiff("", "a\nb\n")

	require.Len(t, result.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,2 @@", result.Hunks[0].Header())
	assert.False(t, df.GenerateDiff("same\n", "same\n").HasChanges)
}

func TestFormatDiffMatchesHunks(t *testing.T) {
	var original, modified strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&original, "line %d\n", i)
		if i%15 == 7 {
			fmt.Fprintf(&modified, "changed %d\n", i)
		} else {
			fmt.Fprintf(&modified, "line %d\n", i)
		}
	}

	df := NewDiffFormatter(DefaultDiffOptions())
	result := df.GenerateDiff(original.String(), modified.String())
	require.Len(t, result.Hunks, 3)
	assert.Equal(t, DiffStat{LinesAdded: 3, LinesRemoved: 3}, result.Stats)

	out := df.FormatDiff("big.rn", result)
	for _, h := range result.Hunks {
		assert.Contains(t, out, h.Header()+"\n")
	}
	assert.Contains(t, out, "-line 22\n+changed 22\n")
}

func TestFormatDiffWithNumbers(t *testing.T) {
	df := NewDiffFormatter(DiffOptions{Context: 0, ShowNumbers: true})
	out := df.FormatDiff("f.rn", df.GenerateDiff("a\n", "b\n"))
	assert.Contains(t, out, "-   1: a\n")
	assert.Contains(t, out, "+   1: b\n")
}
