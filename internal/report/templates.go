package report

import "talent-engine/internal/models"

// The narrative rules live in lookup tables rather than branching logic
// so the wording can be audited and tested independently of the
// arithmetic.

// TypeProfile is the display name and short description for one talent type.
type TypeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var typeProfiles = map[models.TalentType]TypeProfile{
	models.TypeBalanced: {
		Name:        "Balanced Achiever",
		Description: "You perform evenly across all dimensions and have the potential to develop in any direction, suiting work that demands well-rounded ability.",
	},
	models.TypeCognitive: {
		Name:        "Cognitive Leader",
		Description: "You have outstanding logical thinking and learning ability, and excel at analyzing and solving complex problems.",
	},
	models.TypeCreative: {
		Name:        "Creative Leader",
		Description: "You are full of innovative spirit and imagination, and excel at proposing novel ideas and solutions.",
	},
	models.TypeEmotional: {
		Name:        "Emotional Leader",
		Description: "You have high emotional intelligence and empathy, and excel at interpersonal relationships and emotion management.",
	},
	models.TypePractical: {
		Name:        "Practical Leader",
		Description: "You have strong execution and hands-on ability, and excel at turning ideas into action.",
	},
	models.TypeCognitiveCreative: {
		Name:        "Cognitive-Creative Hybrid",
		Description: "You combine logical thinking with creative ability, equally capable of deep analysis and innovative breakthroughs.",
	},
	models.TypeEmotionalPractical: {
		Name:        "Emotional-Practical Hybrid",
		Description: "You combine strong people skills with strong execution, well suited to management and leadership roles.",
	},
}

// TypeProfileFor returns the display profile for a talent type,
// defaulting to the balanced profile for unknown values.
func TypeProfileFor(t models.TalentType) TypeProfile {
	if p, ok := typeProfiles[t]; ok {
		return p
	}
	return typeProfiles[models.TypeBalanced]
}

const summaryTemplate = "Your overall score is %d, an overall level of %s. Your talent type is %s. %s This assessment highlights your distinctive strengths and growth potential."

// strengthTemplates are keyed by category; %s is the display label and
// %d the dimension score.
var strengthTemplates = map[models.Category]string{
	models.CategoryCognitive:  "You perform strongly in %s (%d points), with excellent logical thinking, learning and analytical skills. You grasp complex concepts quickly and get to the heart of a problem.",
	models.CategoryCreativity: "You stand out in %s (%d points), rich in imagination and innovative spirit. You come up with novel ideas and approach problems from unusual angles.",
	models.CategoryEmotional:  "You excel in %s (%d points), with strong emotion management and empathy. You read other people well and build good relationships.",
	models.CategoryPractical:  "You shine in %s (%d points), with strong execution and problem-solving ability. You turn ideas into action and complete tasks efficiently.",
}

const (
	strengthFallbackTemplate  = "%s is one of your strength areas."
	subDimensionTemplate      = "Within %s, your %s is particularly strong (%d points) and is one of your core strengths."
	noStrengthsSentence       = "You have a solid baseline in every area; keep working and you will see larger gains."
	strengthScoreThreshold    = 70
	subDimensionScoreStrength = 80
)

// weaknessTemplates are keyed by category; %s is the display label and
// %d the dimension score.
var weaknessTemplates = map[models.Category]string{
	models.CategoryCognitive:  "There is room to grow in %s (%d points). Practice structured reasoning to strengthen your analytical and problem-solving skills.",
	models.CategoryCreativity: "%s can be developed further (%d points). Spend time with art, design and other creative fields to build innovative thinking.",
	models.CategoryEmotional:  "%s needs attention (%d points). Pay closer attention to your own and others' emotions to improve interpersonal skills.",
	models.CategoryPractical:  "%s has room for improvement (%d points). Set concrete goals and plans to build execution and time management.",
}

const (
	weaknessFallbackTemplate = "%s needs further development."
	noWeaknessesSentence     = "Your performance is balanced across the board; keep it up."
	weaknessScoreThreshold   = 65
)

var typeSuggestions = map[models.TalentType][]string{
	models.TypeBalanced: {
		"Play to your all-round strengths and consider roles that demand broad ability, such as project or product management.",
		"Keep development balanced while picking one direction to specialize in deeply.",
		"Join cross-disciplinary projects, where your breadth delivers the most value.",
	},
	models.TypeCognitive: {
		"Lean into your cognitive edge and consider research, analysis or technical development work.",
		"Keep learning new knowledge and skills to maintain your cognitive advantage.",
		"Also invest in interpersonal and practical skills for more rounded growth.",
	},
	models.TypeCreative: {
		"Put your creativity to work in design, the arts or creative strategy roles.",
		"Keep trying new things with an open mind; novelty fuels more ideas.",
		"Learn methods for turning ideas into concrete outcomes to strengthen execution.",
	},
	models.TypeEmotional: {
		"Use your emotional intelligence in roles such as human resources, consulting or education.",
		"Keep developing your people skills; they are your core competitive edge.",
		"Pair them with solid professional skills to combine soft and hard strengths.",
	},
	models.TypePractical: {
		"Play to your execution strength in operations, sales or project delivery roles.",
		"Keep your bias for action while adding strategic thinking and innovation.",
		"Build teamwork skills so your practical ability scales beyond yourself.",
	},
	models.TypeCognitiveCreative: {
		"Your mix of logic and creativity suits product design and technical innovation work.",
		"Keep developing this hybrid strength; it is a rare combination.",
		"Balance rational analysis with creative divergence to find the sweet spot.",
	},
	models.TypeEmotionalPractical: {
		"Your mix of people skills and execution is ideal for management and leadership.",
		"Develop your team management ability to get the most from this combination.",
		"Keep deepening professional expertise to lead on both people and substance.",
	},
}

const (
	raiseTheBarSentence      = "Your overall performance is outstanding; take on harder goals to reach the next breakthrough."
	improvementPlanSentence  = "Build a systematic improvement plan: start with the weakest area and raise each ability step by step."
	raiseTheBarMeanThreshold = 80
	improvementMeanThreshold = 60
)
