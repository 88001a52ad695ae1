// Package assist pre-fills profile, proposal and job text. Only the offline
// behavior exists: every helper returns a fixed template.
package assist

import "fmt"

// Tone selects the register Polish aims for.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneConcise      Tone = "concise"
	ToneEngaging     Tone = "engaging"
)

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneConcise, ToneEngaging:
		return true
	}
	return false
}

// Match is the result of AnalyzeMatch.
type Match struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Assistant generates suggested text.
type Assistant interface {
	Headline(role string) string
	Polish(text string, tone Tone) string
	DraftCoverLetter(jobTitle string) string
	JobDescription(title string) string
	AnalyzeMatch(jobDescription, skills string) Match
}

// Offline is the Assistant used when no text-generation backend is configured.
type Offline struct{}

var _ Assistant = Offline{}

func (Offline) Headline(role string) string {
	return fmt.Sprintf("Professional %s Expert", role)
}

// Polish marks text as polished. The tone does not change the offline result.
func (Offline) Polish(text string, _ Tone) string {
	return text + " (Polished)"
}

func (Offline) DraftCoverLetter(string) string {
	return "I am very interested in this job. I have the skills required..."
}

func (Offline) JobDescription(title string) string {
	return "We are looking for a skilled " + title + " to join our team..."
}

func (Offline) AnalyzeMatch(string, string) Match {
	return Match{Score: 85, Reason: "Your skills align well with the requirements."}
}
