package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/validation"
)

// SchemaName identifies the catalog document schema
const SchemaName = "families.schema.json"

var (
	//go:embed data/families.json
	embeddedCatalog []byte

	//go:embed data/families.schema.json
	embeddedSchema []byte
)

var schemaValidator = sync.OnceValues(func() (validation.SchemaValidator, error) {
	v := validation.NewSchemaValidator()
	if err := v.Register(SchemaName, embeddedSchema); err != nil {
		return nil, err
	}
	return v, nil
})

// catalogFile mirrors data/families.json
type catalogFile struct {
	SchemaVersion string       `json:"schema_version" validate:"required"`
	Families      []familyFile `json:"families" validate:"required,min=1,dive"`
}

type familyFile struct {
	Family                      domain.Family  `json:"family" validate:"required,oneof=mining woodcutting fishing digging archaeology"`
	Skill                       string         `json:"skill" validate:"required"`
	ActionKind                  string         `json:"action_kind" validate:"required"`
	Verb                        string         `json:"verb" validate:"required"`
	Bubble                      string         `json:"bubble" validate:"required"`
	ToolNoun                    string         `json:"tool_noun" validate:"required"`
	LevelBonusPerTenLevels      float64        `json:"level_bonus_per_ten_levels" validate:"gte=0,lt=1"`
	DefaultMinSuccesses         int            `json:"default_min_successes" validate:"gte=0"`
	DefaultDepletionProbability float64        `json:"default_depletion_probability" validate:"gte=0,lte=1"`
	Tools                       []toolFile     `json:"tools" validate:"required,min=1,dive"`
	Resources                   []resourceFile `json:"resources" validate:"required,min=1,dive"`
}

type toolFile struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	RequiredLevel int     `json:"required_level" validate:"gte=1"`
	SpeedBonus    float64 `json:"speed_bonus" validate:"gte=0,lt=1"`
}

type resourceFile struct {
	ID                   string             `json:"id" validate:"required"`
	Name                 string             `json:"name" validate:"required"`
	RequiredLevel        int                `json:"required_level" validate:"gte=1"`
	RequiredToolID       string             `json:"required_tool_id"`
	ExperienceReward     float64            `json:"experience_reward" validate:"gte=0"`
	Drops                []domain.DropEntry `json:"drops" validate:"required,min=1,dive"`
	BaseActionDurationMs int64              `json:"base_action_duration_ms" validate:"gt=0"`
	RespawnDelayMs       int64              `json:"respawn_delay_ms" validate:"gte=0"`
	MinSuccesses         *int               `json:"min_successes_before_depletion,omitempty" validate:"omitempty,gte=0"`
	DepletionProbability *float64           `json:"depletion_probability,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Load builds the catalog shipped with the binary
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// MustLoad is Load for program startup and tests; it panics on a broken embedded catalog
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse checks a catalog document against the catalog schema, then decodes
// and cross-validates it
func Parse(data []byte) (*Catalog, error) {
	v, err := schemaValidator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	c := newCatalog()
	for _, ff := range file.Families {
		if err := c.addFamily(ff); err != nil {
			return nil, err
		}
	}
	c.index()
	return c, nil
}

func (c *Catalog) addFamily(ff familyFile) error {
	if _, dup := c.families[ff.Family]; dup {
		return fmt.Errorf("%w: family %s declared twice", domain.ErrInvalidCatalog, ff.Family)
	}

	desc := domain.FamilyDescriptor{
		Family:                 ff.Family,
		Skill:                  ff.Skill,
		ActionKind:             ff.ActionKind,
		Verb:                   ff.Verb,
		Bubble:                 ff.Bubble,
		ToolNoun:               ff.ToolNoun,
		LevelBonusPerTenLevels: ff.LevelBonusPerTenLevels,
	}

	for _, tf := range ff.Tools {
		if _, dup := c.tools[tf.ID]; dup {
			return fmt.Errorf("%w: tool %s declared twice", domain.ErrInvalidCatalog, tf.ID)
		}
		tool := domain.ToolDefinition{
			ID:            tf.ID,
			Name:          tf.Name,
			Family:        ff.Family,
			RequiredLevel: tf.RequiredLevel,
			SpeedBonus:    tf.SpeedBonus,
		}
		c.tools[tool.ID] = tool
		desc.Tools = append(desc.Tools, tool)
	}

	for _, rf := range ff.Resources {
		if _, dup := c.resources[rf.ID]; dup {
			return fmt.Errorf("%w: resource %s declared twice", domain.ErrInvalidCatalog, rf.ID)
		}
		if rf.RequiredToolID != "" {
			tool, ok := c.tools[rf.RequiredToolID]
			if !ok || tool.Family != ff.Family {
				return fmt.Errorf("%w: resource %s requires unknown %s tool %s",
					domain.ErrInvalidCatalog, rf.ID, ff.Family, rf.RequiredToolID)
			}
		}
		if len(rf.Drops) > 1 {
			for _, d := range rf.Drops {
				if d.Weight <= 0 {
					return fmt.Errorf("%w: resource %s has weighted drops without a weight on %s",
						domain.ErrInvalidCatalog, rf.ID, d.ItemID)
				}
			}
		}

		res := domain.ResourceDefinition{
			ID:                          rf.ID,
			Name:                        rf.Name,
			Family:                      ff.Family,
			RequiredLevel:               rf.RequiredLevel,
			RequiredToolID:              rf.RequiredToolID,
			ExperienceReward:            rf.ExperienceReward,
			Drops:                       append([]domain.DropEntry(nil), rf.Drops...),
			BaseActionDuration:          time.Duration(rf.BaseActionDurationMs) * time.Millisecond,
			RespawnDelay:                time.Duration(rf.RespawnDelayMs) * time.Millisecond,
			MinSuccessesBeforeDepletion: ff.DefaultMinSuccesses,
			DepletionProbability:        ff.DefaultDepletionProbability,
		}
		if rf.MinSuccesses != nil {
			res.MinSuccessesBeforeDepletion = *rf.MinSuccesses
		}
		if rf.DepletionProbability != nil {
			res.DepletionProbability = *rf.DepletionProbability
		}
		c.resources[res.ID] = res
	}

	c.families[ff.Family] = desc
	return nil
}
