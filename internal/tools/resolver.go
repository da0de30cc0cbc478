package tools

import (
	"math"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// FindBestTool picks the tool a player gathers res with.
//
// Only unnoted inventory slots are considered, and tools above the player's
// skill level are skipped. Resources with a RequiredToolID accept that exact
// tool only; otherwise any tool of the family qualifies and the highest speed
// bonus wins, ties going to the higher level requirement and then the lower id.
func FindBestTool(slots []domain.InventorySlot, level int, res domain.ResourceDefinition, family domain.FamilyDescriptor) (domain.ToolDefinition, bool) {
	candidates := make(map[string]domain.ToolDefinition, len(family.Tools))
	for _, t := range family.Tools {
		if res.RequiredToolID != "" && t.ID != res.RequiredToolID {
			continue
		}
		candidates[t.ID] = t
	}

	var best domain.ToolDefinition
	found := false
	for _, slot := range slots {
		if slot.Noted || slot.Quantity <= 0 {
			continue
		}
		t, ok := candidates[slot.ItemID]
		if !ok || t.RequiredLevel > level {
			continue
		}
		if !found || better(t, best) {
			best, found = t, true
		}
	}
	return best, found
}

func better(a, b domain.ToolDefinition) bool {
	if a.SpeedBonus != b.SpeedBonus {
		return a.SpeedBonus > b.SpeedBonus
	}
	if a.RequiredLevel != b.RequiredLevel {
		return a.RequiredLevel > b.RequiredLevel
	}
	return a.ID < b.ID
}

// SpeedReduction is the fraction removed from a base action duration:
// the tool bonus plus the family's per-ten-levels bonus, clamped to [0, MaxSpeedReduction].
func SpeedReduction(tool domain.ToolDefinition, level int, family domain.FamilyDescriptor) float64 {
	r := tool.SpeedBonus + float64(level/10)*family.LevelBonusPerTenLevels
	if r < 0 {
		return 0
	}
	if r > domain.MaxSpeedReduction {
		return domain.MaxSpeedReduction
	}
	return r
}

// ActionDuration is how long one harvest cycle of res takes with tool at level.
func ActionDuration(res domain.ResourceDefinition, tool domain.ToolDefinition, level int, family domain.FamilyDescriptor) time.Duration {
	reduction := SpeedReduction(tool, level, family)
	return time.Duration(math.Round(float64(res.BaseActionDuration) * (1 - reduction)))
}
