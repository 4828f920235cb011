package tailoring

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// OutputSchema is the JSON Schema the LLM output must satisfy. It mirrors the
// TailoredDocuments shape: a resume body, a cover letter and an ATS report.
const OutputSchema = `{
  "type": "object",
  "required": ["resume", "cover_letter", "ats"],
  "properties": {
    "resume": {
      "type": "object",
      "required": ["summary", "skills_line", "experience"],
      "properties": {
        "summary": {"type": "string"},
        "skills_line": {"type": "array", "items": {"type": "string"}},
        "experience": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["title", "company", "bullets"],
            "properties": {
              "title": {"type": "string"},
              "company": {"type": "string"},
              "start": {"type": "string"},
              "end": {"type": "string"},
              "bullets": {"type": "array", "items": {"type": "string"}}
            }
          }
        },
        "projects": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "stack": {"type": "array", "items": {"type": "string"}},
              "bullets": {"type": "array", "items": {"type": "string"}}
            }
          }
        },
        "education": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "school": {"type": "string"},
              "degree": {"type": "string"},
              "period": {"type": "string"}
            }
          }
        }
      }
    },
    "cover_letter": {
      "type": "object",
      "required": ["address", "intro", "why_you", "evidence", "why_them", "close"],
      "properties": {
        "address": {"type": "string"},
        "intro": {"type": "string"},
        "why_you": {"type": "string"},
        "evidence": {"type": "array", "items": {"type": "string"}},
        "why_them": {"type": "string"},
        "close": {"type": "string"}
      }
    },
    "ats": {
      "type": "object",
      "required": ["jd_keywords_matched", "risks"],
      "properties": {
        "jd_keywords_matched": {"type": "array", "items": {"type": "string"}},
        "risks": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

// ValidateOutput checks a raw LLM response against OutputSchema.
func ValidateOutput(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(OutputSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("output does not match schema: %s", strings.Join(problems, "; "))
	}
	return nil
}
