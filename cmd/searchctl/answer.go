package main

import (
	"fmt"
)

// Run executes the answer command.
func (c *AnswerCmd) Run(deps *Dependencies) error {
	ans, err := deps.API.Answer(deps.Ctx, c.Query, c.Results)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, ans.Answer)

	if len(ans.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for i, s := range ans.Sources {
			fmt.Fprintf(deps.Stdout, "  [%d] %s - %s\n", i+1, s.Title, s.URL)
		}
	}
	fmt.Fprintf(deps.Stderr, "(%s, %d tokens)\n", ans.Model, ans.Usage.TotalTokens)
	return nil
}
