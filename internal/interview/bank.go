// Package interview implements the biography interview engine: the static
// question bank, the level-filtered topic plan, resumable cursor navigation,
// and the narrative draft weaver.
//
// The question bank is read-only static configuration. Topics are listed in
// canonical order, and each topic carries ordered question templates tagged
// with a depth value (1–5). The detail level chosen by the user determines
// which topics and how many questions per topic are included:
//
//	ultra_brief   - core topics only            (~1 page / 500 words)
//	brief         - key moments and memories    (~2-5 pages)
//	moderate      - a well-rounded life story   (~10-20 pages)
//	detailed      - rich detail and context     (~20-50 pages)
//	comprehensive - the full story of a life    (~100+ pages)
package interview

// DetailLevel names one of the five canonical interview depth tiers.
type DetailLevel string

// Canonical detail levels, ordered from shortest to longest.
const (
	LevelUltraBrief    DetailLevel = "ultra_brief"
	LevelBrief         DetailLevel = "brief"
	LevelModerate      DetailLevel = "moderate"
	LevelDetailed      DetailLevel = "detailed"
	LevelComprehensive DetailLevel = "comprehensive"
)

// Question is a single prompt template within a topic. Depth ranges 1–5; a
// question is included in a plan when its depth does not exceed the chosen
// level's maximum depth.
type Question struct {
	Text  string
	Depth int
}

// Topic is an immutable catalog entry: a thematic grouping of related
// questions. MinLevel is the lowest detail level at which the topic appears.
type Topic struct {
	ID          string
	Name        string
	Icon        string
	Description string
	MinLevel    DetailLevel
	Questions   []Question
}

// LevelInfo describes one detail level for display purposes.
type LevelInfo struct {
	ID           DetailLevel `json:"id"`
	Label        string      `json:"label"`
	Description  string      `json:"description"`
	PageEstimate string      `json:"pageEstimate"`
	MaxDepth     int         `json:"maxDepth"`
}

// levelOrder fixes the total ordering of detail levels. Both topic inclusion
// and the monotonic question-count guarantee depend on this ordering.
var levelOrder = []DetailLevel{
	LevelUltraBrief,
	LevelBrief,
	LevelModerate,
	LevelDetailed,
	LevelComprehensive,
}

// levelConfigs carries display metadata per level, in canonical order.
var levelConfigs = []LevelInfo{
	{LevelUltraBrief, "Ultra Brief", "About 1 page — just the highlights", "~1 page", 1},
	{LevelBrief, "Brief", "About 2-5 pages — key moments and memories", "2-5 pages", 2},
	{LevelModerate, "Moderate", "About 10-20 pages — a well-rounded life story", "10-20 pages", 3},
	{LevelDetailed, "Detailed", "About 20-50 pages — rich detail and context", "20-50 pages", 4},
	{LevelComprehensive, "Comprehensive", "50-100+ pages — the full story of a life", "50-100+ pages", 5},
}

// LevelIndex returns the position of level in the canonical ordering, or
// (-1, false) when the level is not recognized.
func LevelIndex(level DetailLevel) (int, bool) {
	for i, l := range levelOrder {
		if l == level {
			return i, true
		}
	}
	return -1, false
}

// Levels returns display metadata for all detail levels in canonical order.
// The returned slice must not be mutated.
func Levels() []LevelInfo { return levelConfigs }

// Topics returns the full question bank in canonical topic order. The
// returned slice and its contents are shared static data and must not be
// mutated.
func Topics() []Topic { return topics }

var topics = []Topic{
	{
		ID:          "basic_info",
		Name:        "Basic Information",
		Icon:        "user",
		Description: "Let's start with the basics about you.",
		MinLevel:    LevelUltraBrief,
		Questions: []Question{
			{"What is your full name? Were you named after anyone special?", 1},
			{"When and where were you born?", 1},
			{"What was your hometown like when you were growing up?", 2},
			{"Do you have any nicknames? How did you get them?", 3},
			{"What is your cultural or ethnic background, and what does it mean to you?", 2},
			{"If someone asked you to describe yourself in a few sentences, what would you say?", 4},
		},
	},
	{
		ID:          "early_life",
		Name:        "Early Life & Childhood",
		Icon:        "baby",
		Description: "Tell me about your earliest years.",
		MinLevel:    LevelUltraBrief,
		Questions: []Question{
			{"What is your earliest memory?", 1},
			{"Describe the home you grew up in. What did it look like and feel like?", 2},
			{"What were your favorite things to do as a child?", 1},
			{"Who was your best friend growing up, and what did you do together?", 2},
			{"What were holidays and special occasions like in your family?", 2},
			{"What is the most vivid memory from your childhood?", 1},
			{"Were there any childhood experiences that shaped who you became?", 3},
			{"What games or activities were popular when you were young?", 3},
			{"What did your neighborhood look like? Who were your neighbors?", 4},
			{"Did you have any pets growing up? Tell me about them.", 3},
			{"What was your favorite food as a child? Did anyone special make it?", 4},
			{"Were you ever in trouble as a kid? What happened?", 4},
			{"What were bedtime routines like? Did anyone read to you or tell stories?", 5},
			{"What smells, sounds, or sensations bring you right back to childhood?", 5},
		},
	},
	{
		ID:          "family_heritage",
		Name:        "Family & Heritage",
		Icon:        "family",
		Description: "Let's talk about your family.",
		MinLevel:    LevelUltraBrief,
		Questions: []Question{
			{"Tell me about your parents. What were they like?", 1},
			{"Do you have brothers or sisters? What was your relationship like growing up?", 1},
			{"Were there any family traditions that were important to your family?", 2},
			{"Tell me about your grandparents. What do you remember about them?", 2},
			{"What values did your family believe in most strongly?", 2},
			{"Were there any family stories that were passed down through generations?", 3},
			{"What did your parents do for a living? How did that affect family life?", 3},
			{"How would you describe your family's financial situation growing up?", 3},
			{"Were there any family members who had an especially big influence on you?", 3},
			{"Do you know where your ancestors came from? What do you know about your family's history?", 4},
			{"How did your family handle disagreements or difficult times?", 4},
			{"What is the funniest family story you remember?", 4},
			{"Were there any family recipes, songs, or customs that have been passed down?", 5},
			{"How has your relationship with your family changed over the years?", 5},
		},
	},
	{
		ID:          "education",
		Name:        "Education & Learning",
		Icon:        "school",
		Description: "Tell me about your school years.",
		MinLevel:    LevelBrief,
		Questions: []Question{
			{"Where did you go to school? What was it like?", 1},
			{"What were your favorite subjects, and were there any teachers who made a big impression on you?", 1},
			{"What is the most important thing school taught you — inside or outside the classroom?", 2},
			{"Were there any struggles or triumphs during your school years?", 2},
			{"Did you go to college or any training after high school? What was that experience like?", 2},
			{"Were you involved in any sports, clubs, or activities at school?", 3},
			{"What was the social scene like at your school? Who did you spend time with?", 3},
			{"Is there anything you wish you had learned or studied?", 4},
			{"Did any books, ideas, or courses change the way you think about the world?", 4},
			{"How did your education prepare you — or not prepare you — for adult life?", 5},
			{"Were there any moments in school that you still think about today?", 5},
		},
	},
	{
		ID:          "career",
		Name:        "Career & Work",
		Icon:        "briefcase",
		Description: "Let's talk about your working life.",
		MinLevel:    LevelBrief,
		Questions: []Question{
			{"What was your first job? How did you get it?", 1},
			{"What kind of work did you do for most of your life? What drew you to it?", 1},
			{"What is the achievement you're most proud of in your career?", 1},
			{"Were there people at work — bosses, coworkers, mentors — who really influenced you?", 2},
			{"Was there a moment when your career took an unexpected turn?", 2},
			{"What did you enjoy most about your work? What did you enjoy least?", 3},
			{"How did you balance work with the rest of your life?", 3},
			{"Did you ever consider a completely different career path?", 3},
			{"What was the toughest challenge you faced at work, and how did you handle it?", 4},
			{"If you could give career advice to a young person today, what would it be?", 4},
			{"How did your work change over the decades? What changes in your field did you witness?", 5},
			{"What does retirement look like for you — or what do you imagine it will be like?", 5},
		},
	},
	{
		ID:          "love_relationships",
		Name:        "Love & Relationships",
		Icon:        "heart",
		Description: "Tell me about the important relationships in your life.",
		MinLevel:    LevelBrief,
		Questions: []Question{
			{"How did you meet the most important person in your life? What drew you to them?", 1},
			{"Can you tell me about your wedding day or the day you committed to your partner?", 2},
			{"What do you think makes a relationship last?", 1},
			{"What is your happiest memory with your partner?", 2},
			{"Who have been your closest friends throughout life? What made those friendships special?", 2},
			{"Have you ever lost someone you loved deeply? How did you cope?", 3},
			{"What has love taught you over the years?", 3},
			{"Were there relationships that changed you as a person?", 4},
			{"How have your ideas about love changed from when you were young to now?", 4},
			{"What is the kindest thing someone has ever done for you?", 5},
			{"Is there anything you wish you had said to someone but never got the chance?", 5},
		},
	},
	{
		ID:          "children_parenting",
		Name:        "Children & Parenting",
		Icon:        "baby-carriage",
		Description: "Tell me about your experience as a parent (or about the children in your life).",
		MinLevel:    LevelModerate,
		Questions: []Question{
			{"Do you have children? Tell me about them.", 1},
			{"What was it like becoming a parent for the first time?", 2},
			{"What is your proudest moment as a parent?", 2},
			{"What was your approach to parenting? Was it similar to how you were raised?", 3},
			{"What are some of your favorite memories with your children?", 3},
			{"What did you learn from your children that surprised you?", 3},
			{"How has your relationship with your children changed as they've grown?", 4},
			{"Do you have grandchildren? What is that experience like?", 4},
			{"If you could pass on one lesson to your children and grandchildren, what would it be?", 4},
			{"What traditions have you started or continued with your family?", 5},
			{"What do you hope your children and grandchildren remember most about you?", 5},
		},
	},
	{
		ID:          "hobbies_passions",
		Name:        "Hobbies & Passions",
		Icon:        "palette",
		Description: "What do you love to do?",
		MinLevel:    LevelModerate,
		Questions: []Question{
			{"What hobbies or interests have you enjoyed throughout your life?", 1},
			{"Is there a skill or talent you're particularly proud of?", 2},
			{"How did you first get into your favorite hobby or activity?", 2},
			{"Have your interests changed over the years, or have some stayed constant?", 3},
			{"Did any of your hobbies lead to unexpected friendships or experiences?", 3},
			{"What creative pursuits have been meaningful to you — music, art, writing, crafts?", 4},
			{"Is there something you always wanted to learn but never got around to?", 4},
			{"What activities bring you the most joy or peace right now?", 5},
		},
	},
	{
		ID:          "achievements",
		Name:        "Achievements & Milestones",
		Icon:        "trophy",
		Description: "What are you most proud of?",
		MinLevel:    LevelModerate,
		Questions: []Question{
			{"What accomplishment in your life are you most proud of?", 1},
			{"Was there a success that surprised you or that you didn't expect?", 2},
			{"Have you received any awards, honors, or special recognition?", 3},
			{"What personal milestone meant the most to you?", 3},
			{"Is there something you accomplished that others might not know about?", 4},
			{"What obstacles did you overcome to achieve something important?", 4},
			{"How do you define success in your own life?", 5},
		},
	},
	{
		ID:          "challenges",
		Name:        "Challenges & Resilience",
		Icon:        "mountain",
		Description: "Life isn't always easy. Tell me about the tough times.",
		MinLevel:    LevelBrief,
		Questions: []Question{
			{"What has been the greatest challenge you've faced in your life?", 1},
			{"How did you get through the most difficult times?", 1},
			{"What gave you strength or hope when things were hard?", 2},
			{"Is there a lesson you learned from a difficult experience that you carry with you?", 2},
			{"Was there a moment you thought you couldn't go on, but you did?", 3},
			{"Did any hardship end up leading to something positive?", 3},
			{"How did your struggles shape the person you are today?", 4},
			{"What would you tell someone going through a similar challenge?", 4},
			{"Were there people who helped you through your hardest times? Who were they?", 5},
		},
	},
	{
		ID:          "faith_values",
		Name:        "Faith & Values",
		Icon:        "compass",
		Description: "What do you believe in?",
		MinLevel:    LevelModerate,
		Questions: []Question{
			{"What are the core values that have guided your life?", 1},
			{"Do you have a spiritual or religious faith? How has it shaped your life?", 2},
			{"Has your philosophy of life changed over the years?", 2},
			{"Was there a moment or experience that deepened or changed your beliefs?", 3},
			{"What does living a good life mean to you?", 3},
			{"How have your values influenced the choices you've made?", 4},
			{"Is there a quote, prayer, or saying that has been meaningful to you?", 5},
			{"What do you think happens after we die?", 5},
		},
	},
	{
		ID:          "travel_adventures",
		Name:        "Travel & Adventures",
		Icon:        "globe",
		Description: "Where has life taken you?",
		MinLevel:    LevelModerate,
		Questions: []Question{
			{"What has been your favorite place you've ever visited?", 1},
			{"Tell me about the most memorable trip or adventure you've had.", 2},
			{"Have you ever lived anywhere other than where you grew up?", 2},
			{"Is there a place you've always wanted to go but haven't yet?", 3},
			{"What is the most adventurous thing you've ever done?", 3},
			{"Did any journey or trip change your perspective on life?", 4},
			{"What places feel like home to you, and why?", 5},
		},
	},
	{
		ID:          "historical_moments",
		Name:        "Historical Moments",
		Icon:        "clock",
		Description: "You've lived through some remarkable times.",
		MinLevel:    LevelDetailed,
		Questions: []Question{
			{"What major world event do you remember most vividly? Where were you when it happened?", 2},
			{"How have you seen the world change during your lifetime?", 2},
			{"What invention or technological change has had the biggest impact on your life?", 3},
			{"Were there historical events that directly affected you or your family?", 3},
			{"What changes in society have made you proud? What changes concern you?", 4},
			{"If you could tell a young person one thing about what life was like in your era, what would it be?", 4},
			{"How have cultural norms and expectations changed from when you were young?", 5},
			{"What do you think the world has gotten better at? What has it gotten worse at?", 5},
		},
	},
	{
		ID:          "daily_life",
		Name:        "Daily Life & Routines",
		Icon:        "sun",
		Description: "Tell me about everyday life.",
		MinLevel:    LevelDetailed,
		Questions: []Question{
			{"Describe a typical day in your life right now.", 3},
			{"What does a perfect day look like for you?", 3},
			{"What small pleasures do you enjoy most?", 4},
			{"What are your favorite foods or meals?", 4},
			{"Do you have any daily rituals or routines that are important to you?", 4},
			{"What music, books, movies, or shows do you enjoy?", 5},
			{"How has your daily life changed from when you were younger?", 5},
		},
	},
	{
		ID:          "reflections",
		Name:        "Life Reflections",
		Icon:        "sunset",
		Description: "Looking back on your life...",
		MinLevel:    LevelUltraBrief,
		Questions: []Question{
			{"If you could go back and give your younger self one piece of advice, what would it be?", 1},
			{"What are you most grateful for in your life?", 1},
			{"Is there anything you would do differently if you could?", 2},
			{"What do you think is the most important thing in life?", 2},
			{"What makes you laugh the most?", 3},
			{"What has surprised you most about getting older?", 3},
			{"What do you know now that you wish you knew at 20?", 4},
			{"What moments in your life would you want to relive?", 4},
			{"How would you describe the theme or story of your life?", 5},
		},
	},
	{
		ID:          "legacy",
		Name:        "Legacy & Messages",
		Icon:        "scroll",
		Description: "What do you want the world to remember?",
		MinLevel:    LevelUltraBrief,
		Questions: []Question{
			{"What do you want your family to know about you and your life?", 1},
			{"What advice would you give to the next generation?", 1},
			{"How would you like to be remembered?", 2},
			{"Is there a message you'd like to leave for your grandchildren or great-grandchildren?", 2},
			{"What do you hope your legacy will be?", 3},
			{"If you could write one final chapter of your story, what would you want it to say?", 3},
			{"What values or traditions do you most hope will carry on after you?", 4},
			{"Is there anything else you'd like to share that we haven't talked about?", 5},
		},
	},
}
