package openai

// maxContentLen caps the document text sent to the model to stay
// inside small local model context windows.
const maxContentLen = 8000

// truncate cuts s to at most n bytes, preferring a line boundary near
// the cut so the model never sees half a speaker turn.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for i := n - 1; i > n-200 && i > 0; i-- {
		if s[i] == '\n' {
			cut = i
			break
		}
	}
	return s[:cut]
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
