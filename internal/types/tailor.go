package types

// TailoredRole is an experience entry rewritten for one job posting.
type TailoredRole struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Start   string   `json:"start,omitempty"`
	End     string   `json:"end,omitempty"`
	Bullets []string `json:"bullets"`
}

// TailoredResume is the resume body produced by the document generation collaborator.
type TailoredResume struct {
	Summary    string         `json:"summary"`
	SkillsLine []string       `json:"skills_line"`
	Experience []TailoredRole `json:"experience"`
	Projects   []Project      `json:"projects,omitempty"`
	Education  []Education    `json:"education,omitempty"`
}

// TailoredCoverLetter is the cover letter body produced alongside the resume.
type TailoredCoverLetter struct {
	Address  string   `json:"address"`
	Intro    string   `json:"intro"`
	WhyYou   string   `json:"why_you"`
	Evidence []string `json:"evidence"`
	WhyThem  string   `json:"why_them"`
	Close    string   `json:"close"`
}

// ATSReport summarizes keyword coverage and risks for a tailored resume.
type ATSReport struct {
	JDKeywordsMatched []string `json:"jd_keywords_matched"`
	Risks             []string `json:"risks"`
}

// TailoredDocuments is the complete structured output for one job.
type TailoredDocuments struct {
	Resume      TailoredResume      `json:"resume"`
	CoverLetter TailoredCoverLetter `json:"cover_letter"`
	ATS         ATSReport           `json:"ats"`
}
