package catalogue

import "memenews/internal/model"

// Entry holds everything the aggregator needs for one category: where to
// look for news, where to look for memes, and which words make a title
// relevant.
type Entry struct {
	NewsSources []model.Source
	MemeSources []string
	Keywords    []string
}

// The catalogue is product data, not configuration: the filter tests pin
// these lists verbatim.
var entries = map[model.Category]Entry{
	model.CategorySports: {
		NewsSources: []model.Source{
			{Name: "Cricket", Category: model.CategorySports, Kind: model.SourceKindListing},
			{Name: "sports", Category: model.CategorySports, Kind: model.SourceKindListing},
			{Name: "worldcup", Category: model.CategorySports, Kind: model.SourceKindListing},
		},
		MemeSources: []string{"CricketShitpost", "sportsmemes", "soccermemes"},
		Keywords: []string{
			"cricket", "ipl", "world cup", "wicket", "century",
			"tournament", "final", "olympics", "football", "match",
		},
	},
	model.CategoryPersona: {
		NewsSources: []model.Source{
			{Name: "elonmusk", Category: model.CategoryPersona, Kind: model.SourceKindListing},
			{Name: "technews", Category: model.CategoryPersona, Kind: model.SourceKindListing},
		},
		MemeSources: []string{"elonmemes", "dankmemes"},
		Keywords: []string{
			"elon", "musk", "tesla", "spacex", "starship", "neuralink",
		},
	},
	model.CategoryEntertainment: {
		NewsSources: []model.Source{
			{Name: "entertainment", Category: model.CategoryEntertainment, Kind: model.SourceKindListing},
			{Name: "movies", Category: model.CategoryEntertainment, Kind: model.SourceKindListing},
		},
		MemeSources: []string{"moviememes", "BollywoodMemes"},
		Keywords: []string{
			"movie", "film", "trailer", "box office", "netflix",
			"series", "album", "concert", "actor", "director",
		},
	},
	model.CategoryAds: {
		NewsSources: []model.Source{
			{Name: "advertising", Category: model.CategoryAds, Kind: model.SourceKindListing},
		},
		MemeSources: []string{"CommercialMemes", "memes"},
		Keywords: []string{
			"advertisement", "campaign", "brand", "commercial", "marketing", "sponsor",
		},
	},
	model.CategoryPolitics: {
		NewsSources: []model.Source{
			{Name: "politics", Category: model.CategoryPolitics, Kind: model.SourceKindListing},
			{Name: "worldnews", Category: model.CategoryPolitics, Kind: model.SourceKindListing},
			{Name: "https://feeds.bbci.co.uk/news/politics/rss.xml", Category: model.CategoryPolitics, Kind: model.SourceKindRSS},
		},
		MemeSources: []string{"PoliticalHumor", "PoliticalMemes"},
		Keywords: []string{
			"election", "parliament", "minister", "government", "policy",
			"vote", "bill", "congress", "senate", "campaign",
		},
	},
}

// Categories returns the known categories in a stable order.
func Categories() []model.Category {
	return []model.Category{
		model.CategorySports,
		model.CategoryPersona,
		model.CategoryEntertainment,
		model.CategoryAds,
		model.CategoryPolitics,
	}
}

// NewsSources returns the ordered news sources for a category.
func NewsSources(category model.Category) []model.Source {
	return entries[category].NewsSources
}

// MemeSources returns the ordered meme source identifiers for a category.
func MemeSources(category model.Category) []string {
	return entries[category].MemeSources
}

// Keywords returns the relevance keyword set for a category.
func Keywords(category model.Category) []string {
	return entries[category].Keywords
}
