package scoring

import (
	"sort"

	"talent-engine/internal/models"
)

const (
	// balancedSpread: profiles whose max-min spread is below this have
	// no standout dimension and classify as balanced regardless of
	// absolute level.
	balancedSpread = 15
	// dualDominantGap: when the top two dimensions are closer than
	// this, the profile is dual-dominant.
	dualDominantGap = 10
)

// ClassifyTalentType determines the talent type from the four dimension
// scores. Total function: any input vector yields a type.
//
// Only two dual types are recognized (cognitive+creativity and
// emotional+practical); every other near-tied pair falls through to
// single-dominant classification on the top dimension.
func ClassifyTalentType(scores []models.DimensionScore) models.TalentType {
	if len(scores) == 0 {
		return models.TypeBalanced
	}

	minScore, maxScore := scores[0].Score, scores[0].Score
	for _, d := range scores[1:] {
		if d.Score < minScore {
			minScore = d.Score
		}
		if d.Score > maxScore {
			maxScore = d.Score
		}
	}

	if maxScore-minScore < balancedSpread {
		return models.TypeBalanced
	}

	sorted := make([]models.DimensionScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	top1 := sorted[0]
	if len(sorted) > 1 {
		top2 := sorted[1]
		if top1.Score-top2.Score < dualDominantGap {
			if t, ok := dualType(top1.Category, top2.Category); ok {
				return t
			}
		}
	}

	return singleType(top1.Category)
}

// dualType matches an order-independent category pair against the two
// recognized complementary pairs.
func dualType(a, b models.Category) (models.TalentType, bool) {
	pair := map[models.Category]bool{a: true, b: true}
	if pair[models.CategoryCognitive] && pair[models.CategoryCreativity] {
		return models.TypeCognitiveCreative, true
	}
	if pair[models.CategoryEmotional] && pair[models.CategoryPractical] {
		return models.TypeEmotionalPractical, true
	}
	return "", false
}

func singleType(category models.Category) models.TalentType {
	switch category {
	case models.CategoryCognitive:
		return models.TypeCognitive
	case models.CategoryCreativity:
		return models.TypeCreative
	case models.CategoryEmotional:
		return models.TypeEmotional
	case models.CategoryPractical:
		return models.TypePractical
	default:
		return models.TypeBalanced
	}
}
