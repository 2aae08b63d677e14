// Package diffproc filters tokenized git diffs down to the lines that carry
// change information before they are handed to a tokenizer: file headers,
// create/delete/rename markers, added and removed lines, and binary-file
// notes. Unchanged context lines and index noise are dropped.
package diffproc

import "strings"

// lineMarker separates logical diff lines in both the raw input and the
// filtered output.
const (
	inputLineMarker  = "<nl>"
	outputLineMarker = `\n`
	fileMarker       = "<FILE>"
)

// Process removes non-changed lines from a tokenized diff. The input is a
// single string with whitespace-separated tokens and <nl> between lines;
// the output joins the kept lines' tokens with single spaces, terminating
// every line with a literal \n token.
func Process(diff string) string {
	var kept [][]string
	for _, line := range strings.Split(diff, inputLineMarker) {
		tokens := strings.Fields(line)
		if row, ok := filterLine(tokens); ok {
			kept = append(kept, row)
		}
	}

	var sb strings.Builder
	for i, row := range kept {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for _, tok := range row {
			sb.WriteString(tok)
			sb.WriteByte(' ')
		}
		sb.WriteString(outputLineMarker)
	}
	return sb.String()
}

func filterLine(tokens []string) ([]string, bool) {
	if len(tokens) == 0 {
		return nil, false
	}
	switch {
	case tokens[0] == fileMarker:
		// file header; the marker itself is dropped
		return tokens[1:], true
	case startsWith(tokens, "new", "file"):
		return tokens, true
	case startsWith(tokens, "deleted", "file"):
		// mode bits after "deleted file" carry no signal
		return tokens[:2], true
	case startsWith(tokens, "rename", "from"), startsWith(tokens, "rename", "to"):
		return tokens, true
	case tokens[0] == "-", tokens[0] == "+":
		return tokens, true
	case tokens[0] == "index", startsWith(tokens, "similarity", "index"):
		return nil, false
	case startsWith(tokens, "Binary", "files"):
		return tokens, true
	default:
		// unchanged context line
		return nil, false
	}
}

func startsWith(tokens []string, prefix ...string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return false
		}
	}
	return true
}
