package main

import (
	"context"
	"io"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
	"github.com/satwikbh/CveAnalyzer/config"
	"github.com/satwikbh/CveAnalyzer/fs"
	"github.com/satwikbh/CveAnalyzer/ingest"
	"github.com/satwikbh/CveAnalyzer/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.AppConfig
	DB       *sqlite.DB
	Records  cveanalyzer.RecordService
	Queries  cveanalyzer.QueryService
	Feeds    cveanalyzer.FeedSource
	Store    *fs.FeedStore
	Ingestor *ingest.Ingestor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Query  QueryCmd  `cmd:"" help:"Ask about CVEs in free text"`
	Fetch  FetchCmd  `cmd:"" help:"Download yearly NVD feeds into the local cache"`
	Ingest IngestCmd `cmd:"" help:"Embed and index yearly NVD feeds"`
	Clear  ClearCmd  `cmd:"" help:"Delete all indexed records"`
	Stats  StatsCmd  `cmd:"" help:"Show index statistics"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	Question []string `arg:"" help:"Free-text question, e.g. 'how do I fix CVE-2021-44228'"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Years       []int `arg:"" optional:"" help:"Years to fetch (default 2014 through the current year)"`
	Concurrency int   `short:"c" default:"2" help:"Concurrent download limit"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Years   []int `arg:"" optional:"" help:"Years to ingest (default 2014 through the current year)"`
	Offline bool  `help:"Read feeds from the local cache instead of downloading"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
