package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", StripCodeFences("plain"))
	assert.Equal(t, "x", StripCodeFences("```\nx\n```"))
}

func TestStripWrappingQuotes(t *testing.T) {
	assert.Equal(t, "hello", StripWrappingQuotes(`"hello"`))
	assert.Equal(t, "hello", StripWrappingQuotes("'hello'"))
	assert.Equal(t, "hello", StripWrappingQuotes("`hello`"))
	// mismatched or single quotes stay
	assert.Equal(t, `"hello'`, StripWrappingQuotes(`"hello'`))
	assert.Equal(t, `"`, StripWrappingQuotes(`"`))
	assert.Equal(t, "", StripWrappingQuotes(""))
	// interior quotes are left alone
	assert.Equal(t, `say "hi" now`, StripWrappingQuotes(`say "hi" now`))
}

func TestLastNonEmptyLine(t *testing.T) {
	assert.Equal(t, "Yes. The response is appropriate.",
		LastNonEmptyLine("Reasoning here.\n\nYes. The response is appropriate.\n\n  \n"))
	assert.Equal(t, "only", LastNonEmptyLine("only"))
	assert.Equal(t, "", LastNonEmptyLine("  \n\t\n"))
	assert.Equal(t, "", LastNonEmptyLine(""))
}

func TestClampRunes(t *testing.T) {
	assert.Equal(t, "abc", ClampRunes("abc", 5))
	assert.Equal(t, "ab", ClampRunes("abcd", 2))
	assert.Equal(t, "héll", ClampRunes("héllo", 4))
}
