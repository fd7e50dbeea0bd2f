package scoring

import "talent-engine/internal/models"

// Names maps category keys to display labels. The engine is
// locale-agnostic; labels come from configuration.
type Names map[models.Category]string

// DefaultNames is the English display mapping.
var DefaultNames = Names{
	models.CategoryCognitive:  "Cognitive Ability",
	models.CategoryCreativity: "Creativity",
	models.CategoryEmotional:  "Emotional Intelligence",
	models.CategoryPractical:  "Practical Ability",
}

// NamesFromConfig converts a string-keyed config mapping into Names,
// falling back to the defaults for missing keys.
func NamesFromConfig(cfg map[string]string) Names {
	names := make(Names, len(DefaultNames))
	for cat, def := range DefaultNames {
		names[cat] = def
	}
	for key, label := range cfg {
		if label != "" {
			names[models.Category(key)] = label
		}
	}
	return names
}

// For returns the display label for a category, falling back to the
// raw category key for unmapped categories.
func (n Names) For(category models.Category) string {
	if label, ok := n[category]; ok && label != "" {
		return label
	}
	return string(category)
}
