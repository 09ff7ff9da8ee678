package util

import "strings"

// NormalizeText strips every character outside [A-Za-z0-9 ], replacing it
// with a space, then collapses whitespace runs and trims. Empty in, empty out.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// ChunkWords splits text into chunks of at most wordsPerChunk words.
// Returns nil for blank input.
func ChunkWords(s string, wordsPerChunk int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	if wordsPerChunk <= 0 {
		wordsPerChunk = len(words)
	}
	chunks := make([]string, 0, (len(words)+wordsPerChunk-1)/wordsPerChunk)
	for i := 0; i < len(words); i += wordsPerChunk {
		end := i + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// WordCount reports the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
