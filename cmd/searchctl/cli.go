package main

import (
	"context"
	"io"
	"time"

	searchproxy "github.com/kailas-cloud/searchproxy/pkg/sdk"
)

// API is the subset of the searchproxy client the commands use.
type API interface {
	Search(ctx context.Context, query string, limit int) ([]searchproxy.TextResult, error)
	SearchImages(ctx context.Context, query string, limit int) ([]searchproxy.ImageResult, error)
	Answer(ctx context.Context, query string, resultsToConsider int) (searchproxy.Answer, error)
	Health(ctx context.Context) (searchproxy.HealthStatus, error)
	Usage(ctx context.Context, period searchproxy.UsagePeriod) (searchproxy.UsageReport, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	API    API
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string        `name:"url" env:"SEARCHPROXY_URL" default:"http://localhost:8081" help:"searchproxy server URL"`
	APIKey  string        `name:"api-key" env:"SEARCHPROXY_API_KEY" help:"Bearer API key"`
	Timeout time.Duration `default:"2m" help:"Request timeout"`

	Search SearchCmd `cmd:"" help:"Search the web"`
	Answer AnswerCmd `cmd:"" help:"Answer a question from search results"`
	Health HealthCmd `cmd:"" help:"Show server health"`
	Usage  UsageCmd  `cmd:"" help:"Show answer token usage"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Images bool   `short:"i" help:"Search images and videos instead of web pages"`
	Limit  int    `short:"n" default:"10" help:"Maximum number of results"`
}

// AnswerCmd is the "answer" subcommand.
type AnswerCmd struct {
	Query   string `arg:"" help:"Question to answer"`
	Results int    `short:"r" default:"3" help:"Search results to ground the answer on"`
}

// HealthCmd is the "health" subcommand.
type HealthCmd struct{}

// UsageCmd is the "usage" subcommand.
type UsageCmd struct {
	Period string `short:"p" enum:"day,month,total" default:"month" help:"Aggregation period (day, month, total)"`
}
