package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
	"github.com/preston-bernstein/player-records-service/internal/providers/csvfeed"
	"github.com/preston-bernstein/player-records-service/internal/query"
)

type queryOptions struct {
	file    string
	url     string
	timeout time.Duration
	verbose bool

	page         int
	limit        int
	team         string
	season       int
	position     string
	nationality  string
	firstName    string
	lastName     string
	birthdate    string
	height       float64
	weight       float64
	groupBy      string
	includeStats bool
}

func newQueryCmd() *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, group and paginate player records",
		Long: `Load the player-season CSV from --file or --url and print one page of results as JSON.
Flags mirror the /players HTTP parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "path to a player-season CSV file")
	f.StringVar(&opts.url, "url", "", "URL of a published player-season CSV")
	f.DurationVar(&opts.timeout, "timeout", 15*time.Second, "timeout for --url downloads")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print a decode summary to stderr")

	f.IntVar(&opts.page, "page", query.DefaultPage, "page number (>= 1)")
	f.IntVar(&opts.limit, "limit", query.DefaultLimit, fmt.Sprintf("records per page (1-%d)", query.MaxLimit))
	f.StringVar(&opts.team, "team", "", "case-insensitive team substring")
	f.IntVar(&opts.season, "season", 0, "exact season")
	f.StringVar(&opts.position, "position", "", "case-insensitive position substring")
	f.StringVar(&opts.nationality, "nationality", "", "case-insensitive nationality substring")
	f.StringVar(&opts.firstName, "first-name", "", "case-insensitive first name substring")
	f.StringVar(&opts.lastName, "last-name", "", "case-insensitive last name substring")
	f.StringVar(&opts.birthdate, "birthdate", "", "birthdate substring")
	f.Float64Var(&opts.height, "height", 0, "exact height")
	f.Float64Var(&opts.weight, "weight", 0, "exact weight")
	f.StringVar(&opts.groupBy, "group-by", "", "group by season, team or player")
	f.BoolVar(&opts.includeStats, "include-stats", false, "wrap output with pagination and summary stats")

	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *queryOptions) error {
	req, err := opts.request(cmd)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cmd, opts)
	if err != nil {
		return err
	}

	res := query.Run(ds, req)
	if res.UnsupportedGroupBy != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: unsupported group-by %q ignored\n", res.UnsupportedGroupBy)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func (o *queryOptions) request(cmd *cobra.Command) (query.Request, error) {
	changed := cmd.Flags().Changed
	req := query.Request{
		Page:  query.PageSpec{Page: o.page, Limit: o.limit},
		Group: query.GroupSpec{By: o.groupBy, IncludeStats: o.includeStats},
	}
	if err := req.Page.Validate(); err != nil {
		return query.Request{}, err
	}

	f := &req.Filter
	f.Team = optionalString(o.team)
	f.Position = optionalString(o.position)
	f.Nationality = optionalString(o.nationality)
	f.FirstName = optionalString(o.firstName)
	f.LastName = optionalString(o.lastName)
	f.Birthdate = optionalString(o.birthdate)
	if changed("season") {
		f.Season = players.Int(o.season)
	}
	if changed("height") {
		if !finite(o.height) {
			return query.Request{}, errors.New("height must be a finite number")
		}
		f.Height = players.Float(o.height)
	}
	if changed("weight") {
		if !finite(o.weight) {
			return query.Request{}, errors.New("weight must be a finite number")
		}
		f.Weight = players.Float(o.weight)
	}
	return req, nil
}

func loadDataset(ctx context.Context, cmd *cobra.Command, opts *queryOptions) (players.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.url != "" {
		client := csvfeed.NewClient(csvfeed.Config{URL: opts.url, Timeout: opts.timeout})
		ds, err := client.FetchDataset(ctx)
		if err != nil {
			return nil, err
		}
		if opts.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "fetched %d rows from %s\n", len(ds), opts.url)
		}
		return ds, nil
	}

	file, err := os.Open(opts.file)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", opts.file)
	}
	defer file.Close()

	ds, report, err := csvfeed.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", opts.file)
	}
	if opts.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "decoded %d rows from %s (%d invalid cells, missing columns %v)\n",
			report.Rows, opts.file, report.InvalidCells, report.MissingColumns)
	}
	return ds, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
