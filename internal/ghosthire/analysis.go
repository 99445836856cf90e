package ghosthire

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	KeyJobText = "job_text"
	KeyJobURL  = "job_url"
)

// AnalysisRequest is the canonical body of POST /analyze.
type AnalysisRequest struct {
	JobText string `json:"job_text,omitempty"`
	JobURL  string `json:"job_url,omitempty"`
}

// aliasPayload lists every key older callers used. Field order inside each
// group is the precedence order.
type aliasPayload struct {
	JobText      string `mapstructure:"job_text"`
	JobTextCamel string `mapstructure:"jobText"`
	Text         string `mapstructure:"text"`

	JobURL      string `mapstructure:"job_url"`
	JobURLCamel string `mapstructure:"jobUrl"`
	URL         string `mapstructure:"url"`
}

// Normalize collapses the known key aliases into an AnalysisRequest. Canonical
// keys win over camel case keys, which win over the short legacy keys; empty
// values are skipped. An empty result is reported as ErrValidation.
func Normalize(payload map[string]any) (AnalysisRequest, error) {
	var aliases aliasPayload

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &aliases,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return AnalysisRequest{}, err
	}

	if err := decoder.Decode(payload); err != nil {
		return AnalysisRequest{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	req := AnalysisRequest{
		JobText: firstNonEmpty(aliases.JobText, aliases.JobTextCamel, aliases.Text),
		JobURL:  firstNonEmpty(aliases.JobURL, aliases.JobURLCamel, aliases.URL),
	}

	if req.Empty() {
		return req, ErrValidation
	}

	return req, nil
}

// Payload returns the canonical map form, containing only non-empty fields.
func (r AnalysisRequest) Payload() map[string]any {
	payload := make(map[string]any, 2)
	r = r.normalized()
	if r.JobText != "" {
		payload[KeyJobText] = r.JobText
	}
	if r.JobURL != "" {
		payload[KeyJobURL] = r.JobURL
	}
	return payload
}

func (r AnalysisRequest) Empty() bool {
	r = r.normalized()
	return r.JobText == "" && r.JobURL == ""
}

func (r AnalysisRequest) normalized() AnalysisRequest {
	return AnalysisRequest{
		JobText: strings.TrimSpace(r.JobText),
		JobURL:  strings.TrimSpace(r.JobURL),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// AnalysisResult is the body of a successful POST /analyze. Missing or
// mistyped fields are tolerated; use the accessors to read them.
type AnalysisResult struct {
	RuleScore *float64  `json:"rule_score,omitempty"`
	Reasons   []string  `json:"reasons,omitempty"`
	Insights  *Insights `json:"insights,omitempty"`
}

type Insights struct {
	Skills *SkillInsights `json:"skills,omitempty"`
}

type SkillInsights struct {
	SkillsFound []string `json:"skills_found,omitempty"`
}

// ReasonsList never returns nil.
func (r *AnalysisResult) ReasonsList() []string {
	if r == nil || r.Reasons == nil {
		return []string{}
	}
	return r.Reasons
}

// Skills returns the detected skills, never nil.
func (r *AnalysisResult) Skills() []string {
	if r == nil || r.Insights == nil || r.Insights.Skills == nil || r.Insights.Skills.SkillsFound == nil {
		return []string{}
	}
	return r.Insights.Skills.SkillsFound
}

// decodeResult builds a result from a decoded response object. Each field is
// decoded on its own with weak typing; a field that still does not fit is
// left at its zero value instead of failing the whole result.
func decodeResult(raw map[string]any) *AnalysisResult {
	result := &AnalysisResult{}

	if v := raw["rule_score"]; v != nil {
		var score float64
		if weakDecode(v, &score) == nil {
			result.RuleScore = &score
		}
	}

	if v := raw["reasons"]; v != nil {
		var reasons []string
		if weakDecode(v, &reasons) == nil {
			result.Reasons = reasons
		}
	}

	insights, _ := raw["insights"].(map[string]any)
	skills, _ := insights["skills"].(map[string]any)
	if v := skills["skills_found"]; v != nil {
		var found []string
		if weakDecode(v, &found) == nil {
			result.Insights = &Insights{Skills: &SkillInsights{SkillsFound: found}}
		}
	}

	return result
}

func weakDecode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// LocCounter is the body of GET /loc.
type LocCounter struct {
	BackendLoc  int `json:"backend_loc"`
	FrontendLoc int `json:"frontend_loc"`
	TotalLoc    int `json:"total_loc"`
}
