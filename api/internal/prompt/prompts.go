// Package prompt holds the embedded prompt texts for the tutor and the
// moderator. The math-formatting block is a compatibility contract with the
// equation renderer on the student side; do not reword it.
package prompt

import "fmt"

const tutorSystemTemplate = `You are a helpful AI tutor/assistant.
Following the instructions below, provide supportive assistance to the student user.

# AI Tutor Role

%s

## Response Criteria

%s

**Math Formatting:**
  - USE LATEX FORMATTING FOR MATHEMATICAL EXPRESSIONS AND FORMULAS, using the format $$...$$ for block equations and $...$ for inline equations.
  - Importantly, **NEVER USE ` + "`\\(`, `\\)` OR `\\[`, `\\]`" + ` FORMATTING FOR MATH IN ANY OF MY COMMUNICATION OR CONTENT. STRICTLY USE $, $ OR $$, $$ FORMATTING.**
  - This is extremely important because the ` + "`\\(\\)` and `\\[\\]`" + ` formatting will not work when displayed to the student.
  - Do not use Unicode math symbols or code blocks for equations. Always use LaTeX notation WITH $$...$$ and $...$ formatting.
  - DO NOT USE HTML FORMATTING FOR EQUATIONS.
  - Examples:
    * Inline equation: The velocity is $v = at + v_0$
    * Block equation:
      $$
      c_j = (1/|S_j|) * \sum x_i  for all x_i in cluster S_j
      $$
  - DO NOT USE CODE BLOCKS FOR EQUATIONS. ALWAYS USE LATEX FORMATTING.
`

const tutorKnowledgeTemplate = `
## Knowledge Base

The following files contain reference information to assist with your responses:

%s
`

// TutorSystem builds the tutor's fixed system prompt. Knowledge is optional.
func TutorSystem(instructions, guidelines, knowledge string) string {
	s := fmt.Sprintf(tutorSystemTemplate, instructions, guidelines)
	if knowledge != "" {
		s += fmt.Sprintf(tutorKnowledgeTemplate, knowledge)
	}
	return s
}

const moderateSystemTemplate = `# Your Task

Based on the moderation guidelines below, your task is to determine if the response from the AI assistant is appropriate given the prior conversation.

# Response Format

Go through each guideline, one-by-one, and QUICKLY determine whether or not the response violates or does no violate that guideline.

Your response should finish with a clear indictor on a separate line including either

"Yes. The response is appropriate."

or

"No. The response is not appropriate."

# Moderation Guidelines

%s

### Additional Guidelines to Assess

1. **Math Formatting:**
   - Responses should **NEVER USE ` + "`\\(`, `\\)` OR `\\[`, `\\]`" + ` FORMATTING FOR MATH IN ANY OF MY COMMUNICATION OR CONTENT.** Responses should **STRICTLY USE ` + "`$`,`$` OR `$$`,`$$`" + ` FORMATTING.**
`

const moderateQueryTemplate = `Based on the moderation guidelines, is the following AI response appropriate given the prior conversation?

# Chat History:

%s

# AI Response:

"%s"
`

// ModerateSystem builds the moderator's system prompt around the
// teacher-authored guidelines.
func ModerateSystem(guidelines string) string {
	return fmt.Sprintf(moderateSystemTemplate, guidelines)
}

// ModerateQuery builds the single-turn judgment request.
func ModerateQuery(history, aiResponse string) string {
	return fmt.Sprintf(moderateQueryTemplate, history, aiResponse)
}

const correctSystemTemplate = `# Your Task

You will be given a chat history between a student and an AI assistant along with the moderator's feedback on why the response was inappropriate.

Your task is to take this feedback and create a new response that is appropriate for the conversation and aligns with the moderator guidelines.

The corrected response should CONTINUE THE CONVERSATION BETWEEN THE USER AND ASSISTANT in a way that is aligned with the system instructions and guidelines.

# Response Format

Respond ONLY WITH THE CORRECTED RESPONSE.

%s
`

const correctQueryTemplate = `The AI assistant gave the following inappropriate response(s) in this conversation:

### **Chat History**:

%s

### **AI Assistant's Response(s)**:

%s

### **Moderator's Feedback(s)**:

%s

Your Task: Provide a corrected response based on the full conversation that is appropriate according to the moderation guidelines. Respond ONLY WITH THE CORRECTED RESPONSE.
`

// Correct builds the one-shot correction prompt. The correction call is not
// conversational, so system and query travel as a single completion input.
func Correct(guidelines, history, responses, feedbacks string) string {
	system := fmt.Sprintf(correctSystemTemplate, guidelines)
	query := fmt.Sprintf(correctQueryTemplate, history, responses, feedbacks)
	return system + "\n\n" + query
}
