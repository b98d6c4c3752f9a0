// Package assessment scores the self-discovery quiz: five questions map onto six
// craving archetypes, a sixth onto the causes of past failed attempts, and the
// resulting profile selects a habit-design blueprint.
package assessment

import (
	"fmt"
	"sort"
	"strings"
)

type Craving string

const (
	Stability   Craving = "stability"
	Novelty     Craving = "novelty"
	Connection  Craving = "connection"
	Recognition Craving = "recognition"
	Competence  Craving = "competence"
	Autonomy    Craving = "autonomy"
)

// Cravings in declaration order. Ties in scoring resolve to the earlier entry.
var Cravings = []Craving{Stability, Novelty, Connection, Recognition, Competence, Autonomy}

func (c Craving) Label() string {
	return cravingLabels[c]
}

type FailureCause string

const (
	NoIdentityAnchor       FailureCause = "no_identity_anchor"
	WillpowerReliance      FailureCause = "willpower_reliance"
	EnvironmentNotDesigned FailureCause = "environment_not_designed"
	HabitTooBig            FailureCause = "habit_too_big"
	NoImmediateReward      FailureCause = "no_immediate_reward"
	VagueIntention         FailureCause = "vague_intention"
	SocialEnvironment      FailureCause = "social_environment"
)

func (f FailureCause) Label() string {
	return failureLabels[f]
}

// CravingAnswers holds the option text chosen for questions one to five.
type CravingAnswers struct {
	Q1 string `json:"q1"`
	Q2 string `json:"q2"`
	Q3 string `json:"q3"`
	Q4 string `json:"q4"`
	Q5 string `json:"q5"`
}

func (a CravingAnswers) list() [5]string {
	return [5]string{a.Q1, a.Q2, a.Q3, a.Q4, a.Q5}
}

type CravingProfile struct {
	Primary   Craving         `json:"primary"`
	Secondary Craving         `json:"secondary"`
	Scores    map[Craving]int `json:"scores"`
}

type FailureProfile struct {
	Primary   FailureCause   `json:"primary"`
	Secondary *FailureCause  `json:"secondary"`
	Causes    []FailureCause `json:"causes"`
}

type Blueprint struct {
	CravingProfile   CravingProfile `json:"cravingProfile"`
	FailureProfile   FailureProfile `json:"failureProfile"`
	Headline         string         `json:"headline"`
	Insight          string         `json:"insight"`
	DesignPrinciples []string       `json:"designPrinciples"`
	FirstHabit       string         `json:"firstHabit"`
	Warning          string         `json:"warning"`
}

// Question is a quiz question as served to the client.
type Question struct {
	Key     string   `json:"key"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Questions lists the six quiz questions with their options in display order.
func Questions() []Question {
	qs := make([]Question, 0, len(cravingQuestions)+1)
	for _, cq := range cravingQuestions {
		opts := make([]string, len(cq.options))
		for i, o := range cq.options {
			opts[i] = o.text
		}
		qs = append(qs, Question{Key: cq.key, Prompt: cq.prompt, Options: opts})
	}
	opts := make([]string, len(failureOptions))
	for i, o := range failureOptions {
		opts[i] = o.text
	}
	return append(qs, Question{Key: "q6", Prompt: failurePrompt, Options: opts})
}

// OptionIndex resolves answer text for question q (0-4) to its table index.
func OptionIndex(q int, answer string) (int, bool) {
	if q < 0 || q >= len(cravingQuestions) {
		return 0, false
	}
	for i, o := range cravingQuestions[q].options {
		if o.text == answer {
			return i, true
		}
	}
	return 0, false
}

func failureIndex(answer string) (int, bool) {
	for i, o := range failureOptions {
		if o.text == answer {
			return i, true
		}
	}
	return 0, false
}

// ScoreCravings accumulates option weights across the five answers. Unknown or
// empty answers contribute nothing.
func ScoreCravings(a CravingAnswers) CravingProfile {
	scores := make(map[Craving]int, len(Cravings))
	for _, c := range Cravings {
		scores[c] = 0
	}

	for q, answer := range a.list() {
		idx, ok := OptionIndex(q, answer)
		if !ok {
			continue
		}
		for _, w := range cravingQuestions[q].options[idx].weights {
			scores[w.craving] += w.points
		}
	}

	ranked := make([]Craving, len(Cravings))
	copy(ranked, Cravings)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	return CravingProfile{
		Primary:   ranked[0],
		Secondary: ranked[1],
		Scores:    scores,
	}
}

// ScoreFailure maps the sixth answer onto its ordered causes. Unrecognised
// answers fall back to willpower reliance alone.
func ScoreFailure(answer string) FailureProfile {
	causes := []FailureCause{WillpowerReliance}
	if idx, ok := failureIndex(answer); ok {
		causes = append([]FailureCause(nil), failureOptions[idx].causes...)
	}

	p := FailureProfile{Primary: causes[0], Causes: causes}
	if len(causes) > 1 {
		secondary := causes[1]
		p.Secondary = &secondary
	}
	return p
}

// GenerateBlueprint scores both parts of the quiz and assembles the personalised
// recommendations. Output depends only on the answers.
func GenerateBlueprint(a CravingAnswers, failureAnswer string) Blueprint {
	cp := ScoreCravings(a)
	fp := ScoreFailure(failureAnswer)

	primary := cp.Primary
	principles := append([]string(nil), designPrinciples[primary]...)

	return Blueprint{
		CravingProfile: cp,
		FailureProfile: fp,
		Headline:       headlines[primary],
		Insight: fmt.Sprintf(
			"Your primary craving is **%s**, with **%s** as a strong secondary driver. Previous attempts most likely failed because of **%s**. %s",
			primary.Label(), cp.Secondary.Label(), fp.Primary.Label(), failureFixes[fp.Primary],
		),
		DesignPrinciples: principles,
		FirstHabit: fmt.Sprintf(
			"Design your first habit around %s and make it feel %s.",
			strings.ToLower(primary.Label()), firstHabitFeel[primary],
		),
		Warning: fmt.Sprintf(
			"Watch out: if the habit starts to feel like %s, you'll disengage. Build in a reset.",
			disengagementRisk[primary],
		),
	}
}
