// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command pollcli prints public polls and poll results from a Quickly Poll
// server.
//
//	pollcli [-url http://localhost:3318] [-token ...] list [-skip 0] [-limit 10]
//	pollcli results <poll-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/danielhkuo/quickly-poll/pollclient"
)

var errUsage = errors.New("usage: pollcli [-url URL] [-token TOKEN] list|results ...")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, time.Now); err != nil {
		slog.Error("pollcli failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("pollcli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	baseURL := fs.String("url", envOr("POLL_API_URL", "http://localhost:3318"), "API base URL")
	token := fs.String("token", os.Getenv("POLL_SESSION_TOKEN"), "session token")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	opts := []pollclient.Option{pollclient.WithTimeout(10 * time.Second)}
	if *token != "" {
		opts = append(opts, pollclient.WithToken(*token))
	}
	c := pollclient.New(*baseURL, opts...)

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	switch rest[0] {
	case "list":
		return runList(ctx, c, rest[1:], out, now())
	case "results":
		if len(rest) != 2 {
			return errUsage
		}
		return runResults(ctx, c, rest[1], out, now())
	default:
		return errors.Wrapf(errUsage, "unknown command %q", rest[0])
	}
}

func runList(ctx context.Context, c *pollclient.Client, args []string, out io.Writer, now time.Time) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	skip := fs.Int("skip", 0, "polls to skip")
	limit := fs.Int("limit", 10, "polls per page")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "invalid list flags")
	}

	polls, err := c.ListPolls(ctx, *skip, *limit)
	if err != nil {
		return err
	}
	if len(polls) == 0 {
		fmt.Fprintln(out, "No polls")
		return nil
	}

	for _, p := range polls {
		var votes int
		for _, o := range p.Options {
			votes += o.VoteCount
		}
		fmt.Fprintf(out, "%s  %s  (%d options, %s votes, created %s)\n",
			p.ID, p.Title, len(p.Options), humanize.Comma(int64(votes)), humanize.RelTime(p.CreatedAt, now, "ago", "from now"))
	}
	return nil
}

func runResults(ctx context.Context, c *pollclient.Client, id string, out io.Writer, now time.Time) error {
	res, err := c.GetResults(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s [%s]\n", res.Poll.Title, res.Status)
	if res.Poll.ExpiresAt != nil {
		fmt.Fprintf(out, "Expires %s\n", humanize.RelTime(*res.Poll.ExpiresAt, now, "ago", "from now"))
	}

	width := 0
	for _, r := range res.Results {
		width = max(width, len(r.Text))
	}
	for _, r := range res.Results {
		bar := strings.Repeat("#", int(r.Percentage/5))
		fmt.Fprintf(out, "  %-*s %6s  %5.1f%%  %s\n", width, r.Text, humanize.Comma(int64(r.Votes)), r.Percentage, bar)
	}

	fmt.Fprintf(out, "Total: %s votes\n", humanize.Comma(int64(res.Analytics.TotalVotes)))
	if mp := res.Analytics.MostPopular; mp != nil {
		fmt.Fprintf(out, "Leading: %s\n", mp.Text)
	}
	fmt.Fprintf(out, "Share: %s\n", res.URLs.Vote)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
