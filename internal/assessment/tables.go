package assessment

// Option text is persisted with each response and is the stable contract with
// the web client. Append new options; never reorder or reword existing ones.

type weight struct {
	craving Craving
	points  int
}

type cravingOption struct {
	text    string
	weights []weight
}

type cravingQuestion struct {
	key     string
	prompt  string
	options []cravingOption
}

var cravingQuestions = [5]cravingQuestion{
	{
		key:    "q1",
		prompt: "What do you feel you need MOST right now?",
		options: []cravingOption{
			{"To feel appreciated / respected", []weight{{Recognition, 3}, {Connection, 1}}},
			{"To feel more in control of my life", []weight{{Stability, 3}, {Autonomy, 2}}},
			{"To learn useful skills & improve", []weight{{Competence, 3}, {Autonomy, 1}}},
			{"To feel supported by people", []weight{{Connection, 3}, {Stability, 1}}},
			{"To bring more excitement into life", []weight{{Novelty, 3}, {Autonomy, 1}}},
		},
	},
	{
		key:    "q2",
		prompt: "What usually blocks your progress the most?",
		options: []cravingOption{
			{"Feeling bored or uninspired", []weight{{Novelty, 3}, {Recognition, 1}}},
			{"Feeling not good enough yet", []weight{{Competence, 3}, {Recognition, 1}}},
			{"Feeling alone in the journey", []weight{{Connection, 3}, {Stability, 1}}},
			{"Feeling undervalued / unnoticed", []weight{{Recognition, 3}, {Connection, 1}}},
			{"Life feels messy or out of control", []weight{{Stability, 3}, {Autonomy, 2}}},
		},
	},
	{
		key:    "q3",
		prompt: "What pushes you to take action?",
		options: []cravingOption{
			{"Being recognised for results", []weight{{Recognition, 3}, {Connection, 1}}},
			{"Clear steps and structure", []weight{{Stability, 3}, {Competence, 1}}},
			{"Trying something new", []weight{{Novelty, 3}, {Autonomy, 1}}},
			{"Doing it with someone", []weight{{Connection, 3}, {Stability, 1}}},
			{"Getting better at a skill", []weight{{Competence, 3}, {Autonomy, 1}}},
		},
	},
	{
		key:    "q4",
		prompt: "What kind of activities energise you most?",
		options: []cravingOption{
			{"Planning, organising, routines", []weight{{Stability, 3}, {Autonomy, 1}}},
			{"New experiences / variety", []weight{{Novelty, 3}, {Autonomy, 1}}},
			{"Skill practice & improvement", []weight{{Competence, 3}, {Stability, 1}}},
			{"Community / group vibe", []weight{{Connection, 3}, {Recognition, 1}}},
			{"Winning, achievement, being seen", []weight{{Recognition, 3}, {Competence, 1}}},
		},
	},
	{
		key:    "q5",
		prompt: "What would make this journey feel truly successful for you?",
		options: []cravingOption{
			{"Feeling stable and consistent", []weight{{Stability, 3}, {Competence, 1}}},
			{"Feeling proud of a skill I built", []weight{{Competence, 3}, {Recognition, 1}}},
			{"Feeling supported throughout", []weight{{Connection, 3}, {Stability, 1}}},
			{"Feeling excited and alive again", []weight{{Novelty, 3}, {Autonomy, 1}}},
			{"Feeling recognised for my growth", []weight{{Recognition, 3}, {Connection, 1}}},
		},
	},
}

type failureOption struct {
	text   string
	causes []FailureCause
}

const failurePrompt = "Think about the last time you tried to change a habit. Why didn't it stick?"

var failureOptions = []failureOption{
	{"I relied on motivation — it worked until I stopped feeling like it", []FailureCause{WillpowerReliance, NoIdentityAnchor}},
	{"I started too big and got overwhelmed", []FailureCause{HabitTooBig, WillpowerReliance}},
	{"My environment made it too hard to stay consistent", []FailureCause{EnvironmentNotDesigned, VagueIntention}},
	{"I didn't see results fast enough and lost interest", []FailureCause{NoImmediateReward, HabitTooBig}},
	{"Life got busy and I never built it into my routine properly", []FailureCause{VagueIntention, EnvironmentNotDesigned}},
	{"The people around me didn't support it", []FailureCause{SocialEnvironment, NoIdentityAnchor}},
	{"I never really believed I was the kind of person who could do it", []FailureCause{NoIdentityAnchor, WillpowerReliance}},
}

var cravingLabels = map[Craving]string{
	Stability:   "Stability & Structure",
	Novelty:     "Novelty & Excitement",
	Connection:  "Connection & Belonging",
	Recognition: "Recognition & Progress",
	Competence:  "Mastery & Competence",
	Autonomy:    "Autonomy & Control",
}

var failureLabels = map[FailureCause]string{
	NoIdentityAnchor:       "Missing identity anchor",
	WillpowerReliance:      "Relying on willpower",
	EnvironmentNotDesigned: "Environment not designed",
	HabitTooBig:            "Habit too ambitious",
	NoImmediateReward:      "No immediate reward",
	VagueIntention:         "Vague intention / no cue",
	SocialEnvironment:      "Social environment working against you",
}

var failureFixes = map[FailureCause]string{
	NoIdentityAnchor:       "We'll build the identity first and let the habit follow.",
	WillpowerReliance:      "We'll design a system that works on the days you don't feel like it.",
	EnvironmentNotDesigned: "We'll redesign your surroundings before asking you to change behaviour.",
	HabitTooBig:            "We'll start absurdly small (two minutes) and scale from there.",
	NoImmediateReward:      "We'll attach an immediate reward to every repetition.",
	VagueIntention:         "We'll write an implementation intention: when X happens, I will do Y.",
	SocialEnvironment:      "We'll bring the people around you on side, or find you new ones.",
}

var headlines = map[Craving]string{
	Stability:   "You thrive with structure. The system is the secret.",
	Novelty:     "You need the journey to feel alive. Boring habits won't stick for you.",
	Connection:  "You change faster with people than on your own.",
	Recognition: "Visible progress is your fuel. Make every win undeniable.",
	Competence:  "Getting better is what drives you. Treat every habit as skill-building.",
	Autonomy:    "You need to own the process. Prescribed routines will fail you.",
}

var designPrinciples = map[Craving][]string{
	Stability: {
		"Anchor each new habit to something you already do every day",
		"Same time, same place: a consistent context beats willpower",
		"Shape your environment so the habit is the default choice",
	},
	Novelty: {
		"Vary how you do the habit, never whether you do it",
		"Raise the challenge progressively so the habit keeps evolving",
		"Gamify it with streaks, levels and fresh milestones",
	},
	Connection: {
		"Find an accountability partner for the habit",
		"Make the habit social wherever you can",
		"Declare your commitment publicly so others expect it from you",
	},
	Recognition: {
		"Make progress visible with a tracker, a milestone board or before/after numbers",
		"Mark every milestone with a small celebration ritual",
		"Share wins regularly so others reflect the new identity back to you",
	},
	Competence: {
		"Treat every repetition as practice, not just a box ticked",
		"Set skill milestones alongside consistency milestones",
		"Learn how the habit works; mastery needs understanding",
	},
	Autonomy: {
		"Design the habit yourself so it fits your life, not someone else's",
		"Keep the form flexible while the identity stays fixed",
		"Drop any system that feels like following someone else's rules",
	},
}

var firstHabitFeel = map[Craving]string{
	Stability:   "predictable and automatic",
	Novelty:     "exciting",
	Connection:  "social",
	Recognition: "measurable",
	Competence:  "like practice",
	Autonomy:    "like your own choice",
}

var disengagementRisk = map[Craving]string{
	Stability:   "chaos or unpredictability",
	Novelty:     "repetitive busywork",
	Connection:  "a solo grind",
	Recognition: "invisible effort",
	Competence:  "mindless repetition",
	Autonomy:    "someone else's system",
}
