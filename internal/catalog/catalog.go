package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// maxSuggestionDistance bounds how different an unknown id may be from a known one
// before we stop offering it as a suggestion
const maxSuggestionDistance = 3

// Catalog is the read-only registry of resource types, tools and family descriptors.
// It is safe for concurrent use once built.
type Catalog struct {
	resources map[string]domain.ResourceDefinition
	families  map[domain.Family]domain.FamilyDescriptor
	tools     map[string]domain.ToolDefinition
	ids       []string
}

func newCatalog() *Catalog {
	return &Catalog{
		resources: make(map[string]domain.ResourceDefinition),
		families:  make(map[domain.Family]domain.FamilyDescriptor),
		tools:     make(map[string]domain.ToolDefinition),
	}
}

func (c *Catalog) index() {
	c.ids = make([]string, 0, len(c.resources))
	for id := range c.resources {
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)
}

// Resource returns the definition for a resource type.
// Unknown ids wrap domain.ErrUnknownResource and name the closest known id, if any.
func (c *Catalog) Resource(id string) (domain.ResourceDefinition, error) {
	if res, ok := c.resources[id]; ok {
		return res, nil
	}
	if s := c.suggest(id); s != "" {
		return domain.ResourceDefinition{}, fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnknownResource, id, s)
	}
	return domain.ResourceDefinition{}, fmt.Errorf("%w: %q", domain.ErrUnknownResource, id)
}

// Family returns the descriptor for a gathering family
func (c *Catalog) Family(f domain.Family) (domain.FamilyDescriptor, error) {
	desc, ok := c.families[f]
	if !ok {
		return domain.FamilyDescriptor{}, fmt.Errorf("%w: %q", domain.ErrUnknownFamily, f)
	}
	return desc, nil
}

// Tool returns a tool definition by id
func (c *Catalog) Tool(id string) (domain.ToolDefinition, bool) {
	t, ok := c.tools[id]
	return t, ok
}

// Resources returns every resource definition ordered by id
func (c *Catalog) Resources() []domain.ResourceDefinition {
	out := make([]domain.ResourceDefinition, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.resources[id])
	}
	return out
}

// Families returns every family descriptor ordered by family name
func (c *Catalog) Families() []domain.FamilyDescriptor {
	out := make([]domain.FamilyDescriptor, 0, len(c.families))
	for _, d := range c.families {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out
}

// DisplayName turns an item or resource id into player-facing text: "copper_ore" -> "Copper Ore".
func (c *Catalog) DisplayName(id string) string {
	if res, ok := c.resources[id]; ok {
		return res.Name
	}
	if t, ok := c.tools[id]; ok {
		return t.Name
	}
	// Casers carry state, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func (c *Catalog) suggest(id string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, known := range c.ids {
		d := levenshtein.ComputeDistance(id, known)
		if d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}
