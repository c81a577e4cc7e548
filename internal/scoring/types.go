// Package scoring evaluates job applications against recruiter-defined
// criteria using an LLM and returns a structured assessment.
package scoring

// Request carries everything the scorer needs for one application.
// It is built fresh per applicant and owned by the caller for the duration
// of a single call.
type Request struct {
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	CoverLetter         string   `json:"coverLetter"`
	ResumeText          string   `json:"resumeText"`
	JobTitle            string   `json:"jobTitle"`
	JobDescription      string   `json:"jobDescription"`
	MustHaveSkills      []string `json:"mustHaveSkills"`
	PreferredBackground string   `json:"preferredBackground"`
	NiceToHaveSkills    []string `json:"niceToHaveSkills"`
	Priorities          []string `json:"priorities"`
}

// SkillDetails holds optional per-skill depth information.
type SkillDetails struct {
	ProficiencyLevels map[string]string  `json:"proficiencyLevels"`
	YearsOfExperience map[string]float64 `json:"yearsOfExperience"`
}

// SkillsAssessment summarizes skill matches against the job requirements.
type SkillsAssessment struct {
	MatchedMustHave   []string     `json:"matchedMustHave"`
	MatchedNiceToHave []string     `json:"matchedNiceToHave"`
	MissingCritical   []string     `json:"missingCritical"`
	SkillDetails      SkillDetails `json:"skillDetails"`
}

// BackgroundFit describes how the candidate's history aligns with the
// preferred background.
type BackgroundFit struct {
	Alignment      string  `json:"alignment"`
	YearsRelevant  float64 `json:"yearsRelevant"`
	IndustryMatch  float64 `json:"industryMatch"`
	EnvironmentFit string  `json:"environmentFit"`
}

// PriorityMatching scores the candidate against each recruiter priority.
type PriorityMatching struct {
	OverallScore int                `json:"overallScore"`
	Details      map[string]float64 `json:"details"`
}

// Recommendation values. The prompt instructs the engine to keep these
// consistent with matchScore (>80, 60-80, <60); the mapping is not
// enforced in code and engine output is passed through as-is.
const (
	RecommendStrongConsider = "Strongly Consider"
	RecommendConsider       = "Consider"
	RecommendPass           = "Pass"
)

// Result is the structured assessment for one application. It is persisted
// as an opaque attribute of the applicant record and never mutated;
// re-scoring replaces it wholesale.
type Result struct {
	MatchScore            int              `json:"matchScore"`
	SkillsAssessment      SkillsAssessment `json:"skillsAssessment"`
	BackgroundFit         BackgroundFit    `json:"backgroundFit"`
	Strengths             []string         `json:"strengths"`
	Concerns              []string         `json:"concerns"`
	PriorityMatching      PriorityMatching `json:"priorityMatching"`
	Recommendation        string           `json:"recommendation"`
	RecommendationDetails string           `json:"recommendationDetails"`
}

// FallbackResult returns the fixed low-confidence assessment substituted
// when the engine's reply cannot be parsed. The must-have list is carried
// into missingCritical verbatim, order preserved.
func FallbackResult(mustHaveSkills []string) *Result {
	missing := make([]string, len(mustHaveSkills))
	copy(missing, mustHaveSkills)

	return &Result{
		MatchScore: 30,
		SkillsAssessment: SkillsAssessment{
			MatchedMustHave:   []string{},
			MatchedNiceToHave: []string{},
			MissingCritical:   missing,
			SkillDetails: SkillDetails{
				ProficiencyLevels: map[string]string{},
				YearsOfExperience: map[string]float64{},
			},
		},
		BackgroundFit: BackgroundFit{
			Alignment:      "Unable to properly assess career alignment",
			YearsRelevant:  0,
			IndustryMatch:  0,
			EnvironmentFit: "Unable to assess",
		},
		Strengths: []string{},
		Concerns: []string{
			"Unable to properly parse candidate qualifications",
			"Recommend manual review of application",
		},
		PriorityMatching: PriorityMatching{
			OverallScore: 0,
			Details:      map[string]float64{},
		},
		Recommendation:        RecommendPass,
		RecommendationDetails: "Unable to properly analyze application. Manual review recommended.",
	}
}
