package searchcache

import (
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

type cachedSet struct {
	Kind   string        `json:"kind"`
	Texts  []cachedText  `json:"texts,omitempty"`
	Images []cachedImage `json:"images,omitempty"`
}

type cachedText struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

type cachedImage struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
}

func fromDomain(s result.Set) cachedSet {
	out := cachedSet{Kind: string(s.Kind())}
	for _, t := range s.Texts() {
		out.Texts = append(out.Texts, cachedText{Title: t.Title(), Snippet: t.Snippet(), URL: t.URL()})
	}
	for _, i := range s.Images() {
		out.Images = append(out.Images, cachedImage{
			Title: i.Title(), URL: i.URL(), Thumbnail: i.Thumbnail(), Source: i.Source(),
		})
	}
	return out
}

func (c cachedSet) toDomain() result.Set {
	if kind.Kind(c.Kind) == kind.Images {
		images := make([]result.Image, len(c.Images))
		for i, img := range c.Images {
			images[i] = result.NewImage(img.Title, img.URL, img.Thumbnail, img.Source)
		}
		return result.NewImageSet(images)
	}
	texts := make([]result.Text, len(c.Texts))
	for i, t := range c.Texts {
		texts[i] = result.NewText(t.Title, t.Snippet, t.URL)
	}
	return result.NewTextSet(texts)
}
