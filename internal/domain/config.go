package domain

// KeyPrefix namespaces every key searchproxy writes to the store.
const KeyPrefix = "searchproxy:"

// SearchConfig maps result kinds to SearXNG categories.
type SearchConfig struct {
	TextCategories  []string
	ImageCategories []string
}

// DefaultSearchConfig returns the categories of a stock SearXNG instance.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		TextCategories:  []string{"general"},
		ImageCategories: []string{"images", "videos"},
	}
}
