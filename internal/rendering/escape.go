// Package rendering provides functionality to render LaTeX resumes from templates.
package rendering

import "strings"

// latexEscaper rewrites the ten characters LaTeX treats specially. Backslash
// maps to \textbackslash{} rather than \\ so it cannot recombine with a
// following brace escape into a control sequence.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX makes untrusted text safe to interpolate into a .tex template.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}
