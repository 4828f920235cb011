// Package rendering materializes tailored documents as LaTeX sources.
// PDF compilation is the responsibility of an external collaborator; this
// package only emits the .tex inputs it would consume.
package rendering

import (
	"strings"
	"text/template"

	"github.com/umukozihr/resume-tailor/internal/types"
)

var templateFuncs = template.FuncMap{
	"esc":  EscapeLaTeX,
	"join": func(items []string, sep string) string { return strings.Join(items, sep) },
}

const resumeTemplate = `\documentclass[10pt]{article}
\usepackage[margin=0.7in]{geometry}
\usepackage{enumitem}
\setlist[itemize]{leftmargin=*,nosep}
\pagestyle{empty}
\begin{document}

\begin{center}
{\LARGE \textbf{ {{- esc .Profile.Name -}} }}\\[2pt]
{{if .Profile.Contacts.Email}}{{esc .Profile.Contacts.Email}}{{end}}{{if .Profile.Contacts.Phone}} \textbar{} {{esc .Profile.Contacts.Phone}}{{end}}{{if .Profile.Contacts.Location}} \textbar{} {{esc .Profile.Contacts.Location}}{{end}}
\end{center}

\section*{Summary}
{{esc .Docs.Resume.Summary}}

\section*{Skills}
{{esc (join .Docs.Resume.SkillsLine ", ")}}

\section*{Experience}
{{range .Docs.Resume.Experience}}\textbf{ {{- esc .Title -}} } --- {{esc .Company}}{{if .Start}} \hfill {{esc .Start}}--{{esc .End}}{{end}}
\begin{itemize}
{{range .Bullets}}  \item {{esc .}}
{{end}}\end{itemize}
{{end}}
{{if .Docs.Resume.Projects}}\section*{Projects}
{{range .Docs.Resume.Projects}}\textbf{ {{- esc .Name -}} }{{if .Stack}} ({{esc (join .Stack ", ")}}){{end}}
\begin{itemize}
{{range .Bullets}}  \item {{esc .}}
{{end}}\end{itemize}
{{end}}{{end}}
{{if .Docs.Resume.Education}}\section*{Education}
{{range .Docs.Resume.Education}}\textbf{ {{- esc .School -}} }{{if .Degree}} --- {{esc .Degree}}{{end}}{{if .Period}} \hfill {{esc .Period}}{{end}}\\
{{end}}{{end}}
\end{document}
`

const coverLetterTemplate = `\documentclass[11pt]{letter}
\usepackage[margin=1in]{geometry}
\signature{ {{- esc .Profile.Name -}} }
\begin{document}
\begin{letter}{ {{- esc .Docs.CoverLetter.Address -}} }
\opening{Dear {{esc .Job.Company}} Hiring Team,}

{{esc .Docs.CoverLetter.Intro}}

{{esc .Docs.CoverLetter.WhyYou}}

\begin{itemize}
{{range .Docs.CoverLetter.Evidence}}  \item {{esc .}}
{{end}}\end{itemize}

{{esc .Docs.CoverLetter.WhyThem}}

{{esc .Docs.CoverLetter.Close}}

\closing{Sincerely,}
\end{letter}
\end{document}
`

// Context carries everything the document templates need.
type Context struct {
	Profile types.Profile
	Job     types.JobDescription
	Docs    *types.TailoredDocuments
}

var (
	resumeTmpl      = template.Must(template.New("resume").Funcs(templateFuncs).Parse(resumeTemplate))
	coverLetterTmpl = template.Must(template.New("cover_letter").Funcs(templateFuncs).Parse(coverLetterTemplate))
)

// RenderResume renders the tailored resume LaTeX source.
func RenderResume(ctx Context) (string, error) {
	return render(resumeTmpl, ctx)
}

// RenderCoverLetter renders the tailored cover letter LaTeX source.
func RenderCoverLetter(ctx Context) (string, error) {
	return render(coverLetterTmpl, ctx)
}

func render(tmpl *template.Template, ctx Context) (string, error) {
	var out strings.Builder
	if err := tmpl.Execute(&out, ctx); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}
