package scoring

import (
	"fmt"
	"strings"
)

// promptTemplate is the fixed evaluation instruction. Job requirements and
// candidate materials are embedded verbatim; the transport (JSON body to the
// generation API) needs no further escaping.
const promptTemplate = `You are an expert AI recruiter with extensive experience in technical hiring. Analyze this job application with extreme precision and provide a detailed assessment.

Job Requirements:
- Position: %s
- Description: %s
- Required Skills: %s
- Background: %s
- Bonus Skills: %s
- Key Priorities: %s

Candidate Information:
- Name: %s %s
- Cover Letter: %s
- Resume Text: %s

Instructions for Analysis:
1. Skills Assessment:
   - Carefully identify exact matches and close variations of required skills
   - Look for evidence of practical experience with each skill
   - Consider skill proficiency levels mentioned

2. Experience Evaluation:
   - Calculate total years of relevant experience
   - Identify specific projects or roles matching job requirements
   - Evaluate leadership and team experience if relevant

3. Background Fit:
   - Compare candidate's career progression with preferred background
   - Assess industry experience alignment
   - Evaluate company size and environment experience

4. Priority Matching:
   - Score how well the candidate matches each priority
   - Look for specific examples demonstrating priorities
   - Consider both direct and indirect evidence

5. Overall Evaluation:
   - Consider skill gaps vs. potential for quick learning
   - Weigh technical skills against soft skills
   - Factor in career trajectory and growth potential

Return a detailed JSON object with this structure:
{
  "matchScore": number (0-100, weighted heavily on must-have skills),
  "skillsAssessment": {
    "matchedMustHave": [exact matches of required skills],
    "matchedNiceToHave": [exact matches of bonus skills],
    "missingCritical": [missing must-have skills],
    "skillDetails": {
      "proficiencyLevels": object with skill:level pairs,
      "yearsOfExperience": object with skill:years pairs
    }
  },
  "backgroundFit": {
    "alignment": detailed assessment of career fit,
    "yearsRelevant": precise calculation of relevant experience,
    "industryMatch": percentage of industry relevance,
    "environmentFit": assessment of company culture fit
  },
  "strengths": [
    detailed strength descriptions with specific examples
  ],
  "concerns": [
    specific concerns with impact assessment
  ],
  "priorityMatching": {
    "overallScore": number (0-100),
    "details": object with priority:score pairs
  },
  "recommendation": "Strongly Consider" (>80%%), "Consider" (60-80%%), or "Pass" (<60%%),
  "recommendationDetails": detailed explanation of the recommendation
}`

// FilterPriorities drops empty and whitespace-only entries. The intake form
// allows up to three priorities and submits blanks for unused slots.
func FilterPriorities(priorities []string) []string {
	filtered := make([]string, 0, len(priorities))
	for _, p := range priorities {
		if strings.TrimSpace(p) == "" {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// BuildPrompt renders the evaluation instruction for one application.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate,
		req.JobTitle,
		req.JobDescription,
		strings.Join(req.MustHaveSkills, ", "),
		req.PreferredBackground,
		strings.Join(req.NiceToHaveSkills, ", "),
		strings.Join(FilterPriorities(req.Priorities), ", "),
		req.FirstName,
		req.LastName,
		req.CoverLetter,
		req.ResumeText,
	)
}
