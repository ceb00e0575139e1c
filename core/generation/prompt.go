package generation

import (
	"fmt"
	"strings"
)

// NotFoundAnswer is the answer when the context does not contain the information
const NotFoundAnswer = "I cannot find this information in the provided documents."

const answerMarker = "ANSWER:"

// FormatPrompt builds the structured prompt with the context as numbered source blocks
func FormatPrompt(question string, context []string) string {
	sources := make([]string, len(context))
	for i, chunk := range context {
		sources[i] = fmt.Sprintf("[Source %d]\n%s", i+1, chunk)
	}

	var b strings.Builder
	b.WriteString("You are a financial document analysis assistant. Answer the question based ONLY on the provided context.\n\n")
	b.WriteString("CONTEXT:\n")
	b.WriteString(strings.Join(sources, "\n\n"))
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString("- Answer concisely and accurately\n")
	b.WriteString("- Only use information from the context above\n")
	b.WriteString("- If the context doesn't contain the answer, say \"I cannot find this information in the provided documents\"\n")
	b.WriteString("- Cite source numbers when making claims (e.g., \"According to Source 1...\")\n")
	b.WriteString("- For numerical data, quote exactly as written\n\n")
	b.WriteString(answerMarker)
	return b.String()
}

// ExtractAnswer keeps only the text after the last "ANSWER:" marker of models echoing the prompt
func ExtractAnswer(text string) string {
	if i := strings.LastIndex(text, answerMarker); i >= 0 {
		return strings.TrimSpace(text[i+len(answerMarker):])
	}
	return text
}
