package searchproxy

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TextResult is a normalized web search hit.
type TextResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// ImageResult is a normalized image or video hit.
// Source is the full image, or the embeddable player for videos.
type ImageResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
}

type searchResponse[T any] struct {
	Type    string `json:"type"`
	Query   string `json:"query"`
	Results []T    `json:"results"`
}

// Search runs a web search. limit <= 0 uses the server default.
func (c *Client) Search(ctx context.Context, query string, limit int) (_ []TextResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search.text", start, err) }()

	var resp searchResponse[TextResult]
	if err = c.do(ctx, http.MethodGet, "/search", searchParams(query, "text", limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchImages runs an image and video search. limit <= 0 uses the server default.
func (c *Client) SearchImages(ctx context.Context, query string, limit int) (_ []ImageResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search.images", start, err) }()

	var resp searchResponse[ImageResult]
	if err = c.do(ctx, http.MethodGet, "/search", searchParams(query, "images", limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func searchParams(query, typ string, limit int) url.Values {
	v := url.Values{}
	v.Set("q", query)
	v.Set("type", typ)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}
