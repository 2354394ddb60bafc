package recommend

import (
	"strings"

	"travelassist/internal/domain"
)

// DietScorer estimates how well a blob of menu text suits a diet
// category. Implementations must return a value in [0,1]; the pipeline
// treats it as an opaque probability.
type DietScorer interface {
	Predict(diet domain.DietType, text string) float64
}

// KeywordScorer is a rule table over positive/negative cue words per
// diet category. Text with no cues at all scores a neutral 0.5.
type KeywordScorer struct {
	positive map[domain.DietType][]string
	negative map[domain.DietType][]string
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		positive: map[domain.DietType][]string{
			domain.DietVeg:              {"veg", "paneer", "dal", "vegetable", "vegetables", "veggie", "salad", "tofu", "vegan", "biryani", "lentils"},
			domain.DietVegan:            {"vegan", "tofu", "salad", "organic", "plant", "fruit", "vegetables", "quinoa", "greens"},
			domain.DietJain:             {"jain", "fruit", "salad"},
			domain.DietNonVegNoBeef:     {"chicken", "mutton", "pork", "fish", "veg", "nonveg"},
			domain.DietLowCarb:          {"grilled", "protein", "salad", "healthy", "greens", "keto"},
			domain.DietDiabeticFriendly: {"oats", "fiber", "healthy", "grilled", "protein", "porridge"},
		},
		negative: map[domain.DietType][]string{
			domain.DietVeg:              {"chicken", "beef", "mutton", "pork", "fish", "egg", "nonveg"},
			domain.DietVegan:            {"paneer", "dairy", "milk", "cheese", "butter", "cream", "creamy", "milkshake", "chicken", "beef", "mutton", "pork", "fish", "egg", "nonveg"},
			domain.DietJain:             {"onion", "garlic", "potato", "root", "carrot", "chicken", "beef", "mutton", "pork", "fish", "egg", "nonveg"},
			domain.DietNonVegNoBeef:     {"beef"},
			domain.DietLowCarb:          {"rice", "pasta", "pizza", "dough", "carbs", "bread", "noodles", "sugar", "dosa", "idli"},
			domain.DietDiabeticFriendly: {"sugar", "sweet", "chocolate", "cake", "soda", "dessert", "refined", "syrup"},
		},
	}
}

// Predict scores text against the category's cue words as
// positives/(positives+negatives), or 0.5 when no cue appears. Unknown
// categories are neutral.
func (s *KeywordScorer) Predict(diet domain.DietType, text string) float64 {
	pos, okP := s.positive[diet]
	neg, okN := s.negative[diet]
	if !okP && !okN {
		return 0.5
	}

	tokens := tokenize(text)
	var p, n int
	for _, t := range tokens {
		if contains(pos, t) {
			p++
		}
		if contains(neg, t) {
			n++
		}
	}
	if p+n == 0 {
		return 0.5
	}
	return float64(p) / float64(p+n)
}

// tokenize lowercases and splits on non-letters, collapsing the common
// "non veg"/"non-veg"/"non_veg" spellings into a single nonveg token so
// they never count as a bare "veg" hit.
func tokenize(text string) []string {
	t := strings.ToLower(text)
	for _, v := range []string{"non_veg", "non-veg", "non veg"} {
		t = strings.ReplaceAll(t, v, "nonveg")
	}
	return strings.FieldsFunc(t, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
}

func contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}
