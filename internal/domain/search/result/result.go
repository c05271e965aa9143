package result

import "github.com/kailas-cloud/searchproxy/internal/domain/search/kind"

// Raw is an unprocessed search engine hit. Fields may contain HTML.
type Raw struct {
	Title        string
	URL          string
	Content      string
	Category     string
	Thumbnail    string
	ThumbnailSrc string
	ImgSrc       string
	IframeSrc    string
}

// Text is a normalized textual hit.
type Text struct {
	title   string
	snippet string
	url     string
}

// NewText creates a textual result.
func NewText(title, snippet, url string) Text {
	return Text{title: title, snippet: snippet, url: url}
}

// Title returns the plain-text title.
func (t Text) Title() string { return t.title }

// Snippet returns the plain-text excerpt.
func (t Text) Snippet() string { return t.snippet }

// URL returns the page address.
func (t Text) URL() string { return t.url }

// Image is a normalized graphical hit (image or video).
type Image struct {
	title     string
	url       string
	thumbnail string
	source    string
}

// NewImage creates a graphical result.
func NewImage(title, url, thumbnail, source string) Image {
	return Image{title: title, url: url, thumbnail: thumbnail, source: source}
}

// Title returns the result title.
func (i Image) Title() string { return i.title }

// URL returns the page hosting the media.
func (i Image) URL() string { return i.url }

// Thumbnail returns the preview image address.
func (i Image) Thumbnail() string { return i.thumbnail }

// Source returns the full-size image or embeddable video address.
func (i Image) Source() string { return i.source }

// Set is the outcome of a single search. Only the slice matching Kind is populated.
type Set struct {
	kind   kind.Kind
	texts  []Text
	images []Image
}

// NewTextSet wraps textual results.
func NewTextSet(texts []Text) Set {
	return Set{kind: kind.Text, texts: texts}
}

// NewImageSet wraps graphical results.
func NewImageSet(images []Image) Set {
	return Set{kind: kind.Images, images: images}
}

// EmptySet returns a set with no results for the given kind.
func EmptySet(k kind.Kind) Set {
	return Set{kind: k}
}

// Kind returns the result family.
func (s Set) Kind() kind.Kind { return s.kind }

// Texts returns textual results.
func (s Set) Texts() []Text { return s.texts }

// Images returns graphical results.
func (s Set) Images() []Image { return s.images }

// Len returns the number of results of the set's kind.
func (s Set) Len() int {
	if s.kind == kind.Images {
		return len(s.images)
	}
	return len(s.texts)
}
