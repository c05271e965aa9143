package main

import (
	"fmt"
	"time"

	searchproxy "github.com/kailas-cloud/searchproxy/pkg/sdk"
)

// Run executes the usage command.
func (c *UsageCmd) Run(deps *Dependencies) error {
	rep, err := deps.API.Usage(deps.Ctx, searchproxy.UsagePeriod(c.Period))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "period:    %s", rep.Period)
	if rep.PeriodStartAt != nil && rep.PeriodEndAt != nil {
		fmt.Fprintf(deps.Stdout, " (%s .. %s)",
			rep.PeriodStartAt.Format(time.DateOnly), rep.PeriodEndAt.Format(time.DateOnly))
	}
	fmt.Fprintln(deps.Stdout)
	if rep.Provider != "" {
		fmt.Fprintf(deps.Stdout, "provider:  %s\n", rep.Provider)
	}
	fmt.Fprintf(deps.Stdout, "answers:   %d\n", rep.Usage.AnswerRequests)
	fmt.Fprintf(deps.Stdout, "tokens:    %d\n", rep.Usage.Tokens)

	switch {
	case rep.Budget.TokensLimit == 0:
		fmt.Fprintln(deps.Stdout, "budget:    unlimited")
	case rep.Budget.IsExhausted:
		fmt.Fprintf(deps.Stdout, "budget:    exhausted (limit %d)\n", rep.Budget.TokensLimit)
	default:
		fmt.Fprintf(deps.Stdout, "budget:    %d of %d tokens left\n", rep.Budget.TokensRemaining, rep.Budget.TokensLimit)
	}
	return nil
}
