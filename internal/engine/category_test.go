package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategoryKnownInputs(t *testing.T) {
	tests := []struct {
		rawCategory string
		itemName    string
		want        Category
	}{
		{"Meat", "Beef", CategoryMeat},
		{"poultry", "", CategoryMeat},
		{"", "chicken wings", CategoryMeat},
		{"Vegetables", "Broccoli", CategoryVegetable},
		{"", "cherry tomato", CategoryVegetable},
		{"Dairy", "Egg", CategoryDairy},
		{"", "cheddar cheese", CategoryDairy},
		{"Fruits", "Banana", CategoryFruit},
		{"", "green apple", CategoryFruit},
		{"Seafood", "", CategorySeafood},
		{"", "atlantic salmon", CategorySeafood},
		{"Spices", "Cinnamon", CategoryOther},
		{"", "flour", CategoryOther},
	}

	for _, tt := range tests {
		got := NormalizeCategory(tt.rawCategory, tt.itemName)
		assert.Equal(t, tt.want, got, "NormalizeCategory(%q, %q)", tt.rawCategory, tt.itemName)
	}
}

func TestNormalizeCategoryAliases(t *testing.T) {
	assert.Equal(t, CategoryVegetable, NormalizeCategory("veg", ""))
	assert.Equal(t, CategoryVegetable, NormalizeCategory("veggies", ""))
	assert.Equal(t, CategorySeafood, NormalizeCategory("sea food", ""))
	assert.Equal(t, CategorySeafood, NormalizeCategory("  Sea Food  ", ""))
}

// Meat is checked before the broader rules so overlapping keywords resolve
// the same way every time.
func TestNormalizeCategoryRuleOrder(t *testing.T) {
	assert.Equal(t, CategoryMeat, NormalizeCategory("turkey", "salmon fillet"))
	assert.Equal(t, CategoryMeat, NormalizeCategory("meat counter", "tuna"))
	assert.Equal(t, CategorySeafood, NormalizeCategory("", "grilled salmon"))
}

func TestNormalizeCategoryTotality(t *testing.T) {
	inputs := []string{
		"", " ", "MEAT", "???", "1234", "日本語", "sea  food", "\tveg\n",
		"a very long unclassifiable description of something edible",
	}

	valid := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		valid[c] = true
	}

	for _, s := range inputs {
		got := NormalizeCategory(s, s)
		assert.True(t, valid[got], "NormalizeCategory(%q, %q) = %q, not a known category", s, s, got)
	}
}

func TestNormalizeCategoryEmptyInputs(t *testing.T) {
	assert.Equal(t, CategoryOther, NormalizeCategory("", ""))
	assert.Equal(t, CategoryOther, NormalizeCategory("   ", "   "))
}
