package main

import (
	"fmt"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Images {
		return c.runImages(deps)
	}

	hits, err := deps.API.Search(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, h := range hits {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n", i+1, h.Title, h.URL)
		if h.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", h.Snippet)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

func (c *SearchCmd) runImages(deps *Dependencies) error {
	images, err := deps.API.SearchImages(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, img := range images {
		fmt.Fprintf(deps.Stdout, "%d. %s\n   page:      %s\n   source:    %s\n   thumbnail: %s\n\n",
			i+1, img.Title, img.URL, img.Source, img.Thumbnail)
	}
	return nil
}
