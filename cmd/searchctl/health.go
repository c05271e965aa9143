package main

import (
	"fmt"
	"maps"
	"slices"
)

// Run executes the health command. Returns an error unless every component is ok.
func (c *HealthCmd) Run(deps *Dependencies) error {
	h, err := deps.API.Health(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "status: %s\n", h.Status)
	for _, name := range slices.Sorted(maps.Keys(h.Checks)) {
		fmt.Fprintf(deps.Stdout, "  %-8s %s\n", name, h.Checks[name])
	}

	if !h.Healthy() {
		return fmt.Errorf("server is %s", h.Status)
	}
	return nil
}
