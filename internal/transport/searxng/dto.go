package searxng

import "github.com/kailas-cloud/searchproxy/internal/domain/search/result"

// searchResponse is the subset of the SearXNG JSON format searchproxy consumes.
type searchResponse struct {
	Query               string         `json:"query"`
	NumberOfResults     float64        `json:"number_of_results"`
	Results             []searchResult `json:"results"`
	UnresponsiveEngines [][]string     `json:"unresponsive_engines"`
}

type searchResult struct {
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Content      string  `json:"content"`
	Category     string  `json:"category"`
	Engine       string  `json:"engine"`
	Score        float64 `json:"score"`
	Thumbnail    string  `json:"thumbnail"`
	ThumbnailSrc string  `json:"thumbnail_src"`
	ImgSrc       string  `json:"img_src"`
	IframeSrc    string  `json:"iframe_src"`
}

func (r searchResult) toDomain() result.Raw {
	return result.Raw{
		Title:        r.Title,
		URL:          r.URL,
		Content:      r.Content,
		Category:     r.Category,
		Thumbnail:    r.Thumbnail,
		ThumbnailSrc: r.ThumbnailSrc,
		ImgSrc:       r.ImgSrc,
		IframeSrc:    r.IframeSrc,
	}
}
