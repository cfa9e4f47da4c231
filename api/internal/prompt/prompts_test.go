package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTutorSystem(t *testing.T) {
	s := TutorSystem("Be patient.", "No full solutions.", "")
	assert.Contains(t, s, "Be patient.")
	assert.Contains(t, s, "No full solutions.")
	assert.Contains(t, s, "USE LATEX FORMATTING FOR MATHEMATICAL EXPRESSIONS")
	assert.Contains(t, s, `NEVER USE `+"`\\(`, `\\)` OR `\\[`, `\\]`")
	assert.NotContains(t, s, "## Knowledge Base")

	withKnow := TutorSystem("i", "g", "reference text")
	assert.Contains(t, withKnow, "## Knowledge Base")
	assert.Contains(t, withKnow, "reference text")
}

func TestModerateSystemEndsWithVerdictInstruction(t *testing.T) {
	s := ModerateSystem("No full solutions.")
	assert.Contains(t, s, "No full solutions.")
	assert.Contains(t, s, `"Yes. The response is appropriate."`)
	assert.Contains(t, s, `"No. The response is not appropriate."`)
}

func TestModerateQuery(t *testing.T) {
	q := ModerateQuery("**user**: hi", "candidate reply")
	assert.Contains(t, q, "**user**: hi")
	assert.Contains(t, q, `"candidate reply"`)
	assert.True(t, strings.Contains(q, "# Chat History:"))
	assert.True(t, strings.Contains(q, "# AI Response:"))
}

func TestCorrectJoinsSystemAndQuery(t *testing.T) {
	p := Correct("guidelines here", "history here", "bad reply", "too direct")
	assert.Contains(t, p, "guidelines here")
	assert.Contains(t, p, "history here")
	assert.Contains(t, p, "bad reply")
	assert.Contains(t, p, "too direct")
	assert.Contains(t, p, "Respond ONLY WITH THE CORRECTED RESPONSE.")
}
