package engine

import "math"

const (
	// FirstLevelCost is the XP needed to go from level 1 to level 2.
	FirstLevelCost = 100

	// Each level costs 1.5x the previous one, floored. Kept as a ratio so the
	// curve stays in integer arithmetic.
	levelCostNum = 3
	levelCostDen = 2
)

// LevelCost returns the XP needed to complete the given level.
// Levels below 1 cost nothing.
func LevelCost(level int) int {
	if level < 1 {
		return 0
	}
	cost := FirstLevelCost
	for l := 1; l < level; l++ {
		cost = nextLevelCost(cost)
	}
	return cost
}

func nextLevelCost(cost int) int {
	if cost > math.MaxInt/levelCostNum {
		return math.MaxInt
	}
	return cost * levelCostNum / levelCostDen
}

// XPRequiredForLevel returns the total XP threshold required to be at the given level.
// Level 1 (and below) requires 0 XP.
func XPRequiredForLevel(level int) int {
	total := 0
	cost := FirstLevelCost
	for l := 1; l < level; l++ {
		if cost > math.MaxInt-total {
			return math.MaxInt
		}
		total += cost
		cost = nextLevelCost(cost)
	}
	return total
}

// LevelFor returns the level reached with totalXP and the XP still missing
// to reach the next one. Negative input counts as zero.
func LevelFor(totalXP int) (level int, xpToNextLevel int) {
	if totalXP < 0 {
		totalXP = 0
	}
	level = 1
	cost := FirstLevelCost
	threshold := 0
	for {
		if cost > math.MaxInt-threshold {
			return level, math.MaxInt - totalXP
		}
		if totalXP < threshold+cost {
			return level, threshold + cost - totalXP
		}
		threshold += cost
		level++
		cost = nextLevelCost(cost)
	}
}

// Progress reports how far totalXP is into the current level: into is the XP
// earned since the level started and cost is what the level costs in total.
func Progress(totalXP int) (into int, cost int) {
	if totalXP < 0 {
		totalXP = 0
	}
	level, _ := LevelFor(totalXP)
	return totalXP - XPRequiredForLevel(level), LevelCost(level)
}
