package domain

type AvatarLevel string

const (
	LevelToddler  AvatarLevel = "toddler"
	LevelBeginner AvatarLevel = "beginner"
	LevelLearner  AvatarLevel = "learner"
	LevelThinker  AvatarLevel = "thinker"
	LevelMaster   AvatarLevel = "master"
	LevelDragon   AvatarLevel = "dragon"
)

// XP granted per action. These are fixed and not user configurable.
const (
	XPSessionComplete = 25
	XPReflection      = 15
	XPSynthesis       = 10
	XPWeeklyGoalBonus = 50

	// maxTierHeadroom is the ceiling above the last tier's floor.
	maxTierHeadroom = 1000
)

type LevelInfo struct {
	Level       AvatarLevel
	MinXP       int
	Name        string
	Emoji       string
	Description string
}

// levelTable is ordered by MinXP ascending.
var levelTable = []LevelInfo{
	{LevelToddler, 0, "Curious Toddler", "🐣", "Just hatched! Ready to explore."},
	{LevelBeginner, 100, "Eager Beginner", "🐥", "Taking the first steps on the learning journey."},
	{LevelLearner, 300, "Dedicated Learner", "🦉", "Growing wiser with every session."},
	{LevelThinker, 600, "Deep Thinker", "🧙", "Mastering the art of reflection."},
	{LevelMaster, 1000, "Knowledge Master", "👑", "A true scholar emerges!"},
	{LevelDragon, 2000, "Legendary Dragon", "🐉", "The ultimate learning form."},
}

// Levels returns a copy of the tier table.
func Levels() []LevelInfo {
	out := make([]LevelInfo, len(levelTable))
	copy(out, levelTable)
	return out
}

// AvatarLevelForXP returns the richest tier whose floor totalXP reaches.
func AvatarLevelForXP(totalXP int) AvatarLevel {
	for i := len(levelTable) - 1; i >= 0; i-- {
		if totalXP >= levelTable[i].MinXP {
			return levelTable[i].Level
		}
	}
	return LevelToddler
}

func indexOf(level AvatarLevel) int {
	for i, info := range levelTable {
		if info.Level == level {
			return i
		}
	}
	return 0
}

// InfoFor looks up a tier. Unknown values resolve to the first tier.
func InfoFor(level AvatarLevel) LevelInfo {
	return levelTable[indexOf(level)]
}

// Ordinal is the 1-based position of level in the table.
func Ordinal(level AvatarLevel) int {
	return indexOf(level) + 1
}

func CurrentLevelFloor(level AvatarLevel) int {
	return levelTable[indexOf(level)].MinXP
}

func NextLevelFloor(level AvatarLevel) int {
	i := indexOf(level)
	if i < len(levelTable)-1 {
		return levelTable[i+1].MinXP
	}
	return levelTable[i].MinXP + maxTierHeadroom
}

// LevelUp reports a tier change. Tiers skipped in between are not listed.
type LevelUp struct {
	From AvatarLevel
	To   AvatarLevel
}
