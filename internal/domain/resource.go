package domain

import "time"

// Family groups resources that share a skill, a tool set and a gathering verb.
type Family string

// Gathering families
const (
	FamilyMining      Family = "mining"
	FamilyWoodcutting Family = "woodcutting"
	FamilyFishing     Family = "fishing"
	FamilyDigging     Family = "digging"
	FamilyArchaeology Family = "archaeology"
)

// DropEntry is one row of a resource drop table. A table with a single entry
// always yields that entry; otherwise entries are picked by Weight.
type DropEntry struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Weight   int    `json:"weight" validate:"min=0"`
}

// ResourceDefinition is the immutable definition of a resource type.
type ResourceDefinition struct {
	ID                          string        `json:"id"`
	Name                        string        `json:"name"`
	Family                      Family        `json:"family"`
	RequiredLevel               int           `json:"required_level"`
	RequiredToolID              string        `json:"required_tool_id,omitempty"`
	ExperienceReward            float64       `json:"experience_reward"`
	Drops                       []DropEntry   `json:"drops"`
	BaseActionDuration          time.Duration `json:"base_action_duration"`
	RespawnDelay                time.Duration `json:"respawn_delay"`
	MinSuccessesBeforeDepletion int           `json:"min_successes_before_depletion"`
	DepletionProbability        float64       `json:"depletion_probability"`
}

// ToolDefinition describes a gathering tool.
type ToolDefinition struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Family        Family  `json:"family"`
	RequiredLevel int     `json:"required_level"`
	SpeedBonus    float64 `json:"speed_bonus"`
}

// FamilyDescriptor parameterizes the gathering engine for one family.
type FamilyDescriptor struct {
	Family     Family `json:"family"`
	Skill      string `json:"skill"`
	ActionKind string `json:"action_kind"` // "mine", "chop", "fish", "dig", "excavate"
	Verb       string `json:"verb"`        // completes messages: "You need a pickaxe to mine this rock."
	Bubble     string `json:"bubble"`      // skill bubble label shown while a session is active
	ToolNoun   string `json:"tool_noun"`   // generic tool name: "pickaxe", "axe"

	// LevelBonusPerTenLevels is the fractional duration reduction granted per ten skill levels.
	LevelBonusPerTenLevels float64 `json:"level_bonus_per_ten_levels"`

	Tools []ToolDefinition `json:"tools"`
}
