package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer_Canned(t *testing.T) {
	for concept, text := range CannedAnswers {
		assert.True(t, IsCanned(concept))
		assert.Equal(t, text, Answer("Explain how "+concept+" works in JavaScript", concept))
	}
	assert.Len(t, CannedAnswers, 5)
}

func TestAnswer_CannedTextIsExact(t *testing.T) {
	closures := CannedAnswers["closures"]
	assert.True(t, strings.HasPrefix(closures, "A closure is a function with access to its outer scope variables.\n\n**Example:**\n```javascript\n"))
	assert.True(t, strings.HasSuffix(closures, "```\n\n**Use cases:** Data privacy, factory functions, event handlers."))

	async := CannedAnswers["async/await"]
	assert.Contains(t, async, "1. `async` marks a function as asynchronous\n")
	assert.True(t, strings.HasSuffix(async, "  }\n}\n```"))

	hooks := CannedAnswers["custom hooks"]
	assert.Contains(t, hooks, "  });\n  \n  useEffect(() => {\n")
	assert.Contains(t, hooks, "  }, [key, value]);\n  \n  return [value, setValue];\n}\n```")
	assert.Equal(t, 2, strings.Count(hooks, "```"))

	assert.Contains(t, CannedAnswers["state management"], "**Local:** `useState(initialValue)`\n")
	assert.True(t, strings.HasSuffix(CannedAnswers["event loop"], "**Order:** Sync code -> Microtasks -> Macrotasks"))
}

func TestAnswer_Fallback(t *testing.T) {
	got := Answer("What is technical debt and why is it important?", "technical debt")
	want := "**Overview:** What is technical debt and why is it important is important in modern development.\n" +
		"\n" +
		"**Key Points:**\n" +
		"1. Understanding fundamentals is crucial\n" +
		"2. Follow best practices for maintainability\n" +
		"3. Testing and documentation are essential\n" +
		"\n" +
		"**Best Practices:**\n" +
		"- Write clean, readable code\n" +
		"- Follow established conventions\n" +
		"- Document your implementation"
	assert.Equal(t, want, got)
	assert.False(t, IsCanned("technical debt"))
}

func TestAnswer_FallbackWithoutConcept(t *testing.T) {
	got := Answer("Why? How?", "")
	assert.True(t, strings.HasPrefix(got, "**Overview:** Why How is important"))
	assert.False(t, IsCanned(""))
}
