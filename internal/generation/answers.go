package generation

import "strings"

const fence = "```"

// CannedAnswers maps a concept to its hand-written explanation. The text is
// training content and must stay byte-exact.
var CannedAnswers = map[string]string{
	"async/await": `Async/await is syntactic sugar built on top of Promises.

**How it works:**
1. ` + "`async`" + ` marks a function as asynchronous
2. ` + "`await`" + ` pauses execution until the Promise resolves
3. Error handling uses try/catch blocks

**Example:**
` + fence + `javascript
async function fetchData() {
  try {
    const response = await fetch('/api/data');
    return await response.json();
  } catch (error) {
    console.error('Error:', error);
  }
}
` + fence,

	"closures": `A closure is a function with access to its outer scope variables.

**Example:**
` + fence + `javascript
function createCounter() {
  let count = 0;
  return () => ++count;
}
const counter = createCounter();
console.log(counter()); // 1
console.log(counter()); // 2
` + fence + `

**Use cases:** Data privacy, factory functions, event handlers.`,

	"event loop": `The Event Loop handles async operations in JS.

**Components:**
1. Call Stack - executes sync code
2. Web APIs - handle async operations
3. Callback Queue - stores ready callbacks
4. Microtask Queue - for Promises

**Order:** Sync code -> Microtasks -> Macrotasks`,

	"state management": `React state management options:

**Local:** ` + "`useState(initialValue)`" + `
**Complex:** ` + "`useReducer(reducer, initial)`" + `
**Global:** Context API or Zustand/Redux

**Best practice:** Keep state as local as possible.`,

	// The blank lines inside the hook body carry two spaces of indentation.
	"custom hooks": "Extract reusable stateful logic:\n" +
		"\n" +
		fence + "javascript\n" +
		"function useLocalStorage(key, initial) {\n" +
		"  const [value, setValue] = useState(() => {\n" +
		"    const stored = localStorage.getItem(key);\n" +
		"    return stored ? JSON.parse(stored) : initial;\n" +
		"  });\n" +
		"  \n" +
		"  useEffect(() => {\n" +
		"    localStorage.setItem(key, JSON.stringify(value));\n" +
		"  }, [key, value]);\n" +
		"  \n" +
		"  return [value, setValue];\n" +
		"}\n" +
		fence,
}

const fallbackBody = ` is important in modern development.

**Key Points:**
1. Understanding fundamentals is crucial
2. Follow best practices for maintainability
3. Testing and documentation are essential

**Best Practices:**
- Write clean, readable code
- Follow established conventions
- Document your implementation`

// IsCanned reports whether concept has a canned explanation.
func IsCanned(concept string) bool {
	_, ok := CannedAnswers[concept]
	return concept != "" && ok
}

// Answer returns the canned explanation for concept, or a generic answer
// built from question with every "?" removed.
func Answer(question, concept string) string {
	if IsCanned(concept) {
		return CannedAnswers[concept]
	}
	return "**Overview:** " + strings.ReplaceAll(question, "?", "") + fallbackBody
}
