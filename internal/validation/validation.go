// Package validation provides sanity checks for rendered LaTeX sources
// before they are published as artifacts.
package validation

import (
	"fmt"
	"strings"
)

// Violation describes one problem found in a rendered source.
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	LineNumber *int   `json:"line_number,omitempty"`
}

// placeholderPhrases are fragments that indicate the model emitted template
// filler instead of content grounded in the profile.
var placeholderPhrases = []string{
	"lorem ipsum",
	"[insert",
	"your name here",
	"[company name]",
}

// CheckSource validates a rendered LaTeX source. It reports unbalanced
// braces, mismatched environments, leftover placeholder filler and an empty
// document body. It never compiles the source; the checks are purely lexical.
func CheckSource(content string) []Violation {
	var violations []Violation

	violations = append(violations, checkBraces(content)...)
	violations = append(violations, checkEnvironments(content)...)
	violations = append(violations, checkPlaceholders(content)...)

	if body := documentBody(content); strings.TrimSpace(body) == "" {
		violations = append(violations, Violation{
			Type:     "empty_document",
			Severity: "error",
			Details:  "document body is empty",
		})
	}

	return violations
}

// HasErrors reports whether any violation is severe enough to reject the source.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == "error" {
			return true
		}
	}
	return false
}

// Summary joins violation details into one message.
func Summary(violations []Violation) string {
	details := make([]string, len(violations))
	for i, v := range violations {
		details[i] = v.Details
	}
	return strings.Join(details, "; ")
}

// checkBraces verifies that unescaped braces balance across the document.
func checkBraces(content string) []Violation {
	depth := 0
	escaped := false
	for _, r := range content {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return []Violation{{
					Type:     "unbalanced_braces",
					Severity: "error",
					Details:  "closing brace without a matching opening brace",
				}}
			}
		}
	}
	if depth != 0 {
		return []Violation{{
			Type:     "unbalanced_braces",
			Severity: "error",
			Details:  fmt.Sprintf("%d unclosed brace(s)", depth),
		}}
	}
	return nil
}

// checkEnvironments verifies that \begin{...} and \end{...} nest properly.
func checkEnvironments(content string) []Violation {
	var stack []string
	for _, line := range strings.Split(content, "\n") {
		rest := line
		for {
			begin := strings.Index(rest, `\begin{`)
			end := strings.Index(rest, `\end{`)
			switch {
			case begin >= 0 && (end < 0 || begin < end):
				name, ok := envName(rest[begin+len(`\begin{`):])
				if !ok {
					return []Violation{{Type: "malformed_environment", Severity: "error", Details: "unterminated \\begin"}}
				}
				stack = append(stack, name)
				rest = rest[begin+len(`\begin{`)+len(name):]
			case end >= 0:
				name, ok := envName(rest[end+len(`\end{`):])
				if !ok {
					return []Violation{{Type: "malformed_environment", Severity: "error", Details: "unterminated \\end"}}
				}
				if len(stack) == 0 || stack[len(stack)-1] != name {
					return []Violation{{
						Type:     "mismatched_environment",
						Severity: "error",
						Details:  fmt.Sprintf("\\end{%s} does not match the open environment", name),
					}}
				}
				stack = stack[:len(stack)-1]
				rest = rest[end+len(`\end{`)+len(name):]
			default:
				rest = ""
			}
			if rest == "" {
				break
			}
		}
	}
	if len(stack) > 0 {
		return []Violation{{
			Type:     "mismatched_environment",
			Severity: "error",
			Details:  fmt.Sprintf("environment %q is never closed", stack[len(stack)-1]),
		}}
	}
	return nil
}

func envName(s string) (string, bool) {
	close := strings.IndexRune(s, '}')
	if close < 0 {
		return "", false
	}
	return s[:close], true
}

// checkPlaceholders flags template filler the model left in the output.
func checkPlaceholders(content string) []Violation {
	var violations []Violation
	for lineNum, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		for _, phrase := range placeholderPhrases {
			if strings.Contains(lower, phrase) {
				n := lineNum + 1
				violations = append(violations, Violation{
					Type:       "placeholder_text",
					Severity:   "error",
					Details:    fmt.Sprintf("line %d contains placeholder text: %s", n, phrase),
					LineNumber: &n,
				})
				break
			}
		}
	}
	return violations
}

// documentBody returns the text between \begin{document} and \end{document},
// or the whole content when the markers are absent.
func documentBody(content string) string {
	start := strings.Index(content, `\begin{document}`)
	end := strings.Index(content, `\end{document}`)
	if start < 0 || end < 0 || end < start {
		return content
	}
	return content[start+len(`\begin{document}`) : end]
}
