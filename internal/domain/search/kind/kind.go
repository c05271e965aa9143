package kind

// Kind selects which result family a search returns.
type Kind string

// Search kind constants.
const (
	// Text returns title/snippet/url results from general web categories.
	Text Kind = "text"
	// Images returns graphical results from image and video categories.
	Images Kind = "images"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Text || k == Images
}
