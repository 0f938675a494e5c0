package engine

import (
	"regexp"
	"strings"
)

// Category is a normalized inventory category. Raw category strings from the
// store are inconsistent free text; everything displayed or aggregated is
// bucketed into one of these six values.
type Category string

const (
	CategoryMeat      Category = "meat"
	CategoryVegetable Category = "vegetable"
	CategoryDairy     Category = "dairy"
	CategoryFruit     Category = "fruit"
	CategorySeafood   Category = "seafood"
	CategoryOther     Category = "other"
)

// Categories lists every normalized category in display order.
var Categories = []Category{
	CategoryMeat,
	CategoryVegetable,
	CategoryDairy,
	CategoryFruit,
	CategorySeafood,
	CategoryOther,
}

// categoryRule matches a raw category string and/or an item name against one
// normalized category. Rules are checked in order and the first match wins;
// meat comes first so that e.g. "turkey" is not swallowed by a broader rule.
type categoryRule struct {
	category    Category
	rawPattern  *regexp.Regexp
	namePattern *regexp.Regexp
}

var categoryRules = []categoryRule{
	{
		category:    CategoryMeat,
		rawPattern:  regexp.MustCompile(`meat|poultry|mutton|beef|pork|lamb|turkey|duck`),
		namePattern: regexp.MustCompile(`chicken|beef|pork|lamb`),
	},
	{
		category:    CategoryVegetable,
		rawPattern:  regexp.MustCompile(`veg|vegetable|vegetables`),
		namePattern: regexp.MustCompile(`broccoli|tomato|capsicum|onion|lettuce|carrot|potato|cauliflower`),
	},
	{
		category:    CategoryDairy,
		rawPattern:  regexp.MustCompile(`dair|milk|cheese|yogurt|butter|curd`),
		namePattern: regexp.MustCompile(`milk|cheese|yogurt|butter`),
	},
	{
		category:    CategoryFruit,
		rawPattern:  regexp.MustCompile(`fruit|fruits`),
		namePattern: regexp.MustCompile(`banana|apple|orange|mango|grape`),
	},
	{
		category:    CategorySeafood,
		rawPattern:  regexp.MustCompile(`sea\s*food|seafood|fish|prawn|shrimp|cod|salmon|tuna`),
		namePattern: regexp.MustCompile(`fish|prawn|shrimp|cod|salmon|tuna`),
	},
}

// categoryAliases maps exact raw strings that the patterns above miss.
var categoryAliases = map[string]Category{
	"veg":      CategoryVegetable,
	"veggies":  CategoryVegetable,
	"sea food": CategorySeafood,
}

// NormalizeCategory maps a raw category string and item name to a normalized
// category. It is pure and total: any input, including empty strings, yields
// one of the six categories, never an error.
func NormalizeCategory(rawCategory, itemName string) Category {
	raw := strings.ToLower(strings.TrimSpace(rawCategory))
	name := strings.ToLower(strings.TrimSpace(itemName))

	if raw == "" && name == "" {
		return CategoryOther
	}

	for _, rule := range categoryRules {
		if raw != "" && rule.rawPattern.MatchString(raw) {
			return rule.category
		}
		if name != "" && rule.namePattern.MatchString(name) {
			return rule.category
		}
	}

	if cat, ok := categoryAliases[raw]; ok {
		return cat
	}

	return CategoryOther
}
