// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/notefind"
	"github.com/poiesic/notefind/suggest"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "notefind",
		Usage: "Morphological link completion for markdown vaults",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Print link suggestions for a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(workspaceFlags(false),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: suggest.DefaultLimit,
					},
				),
			},
			{
				Name:      "select",
				Usage:     "Select a suggestion, record it as recent and print its link",
				ArgsUsage: "QUERY...",
				Action:    selectCommand,
				Flags: append(workspaceFlags(true),
					&cli.IntFlag{
						Name:  "pick",
						Usage: "1-based position of the suggestion to select",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "display",
						Usage: "Display text of the link (defaults to the text after | in the query)",
					},
				),
			},
			{
				Name:   "recent",
				Usage:  "Print recently selected notes, newest first",
				Action: recentCommand,
				Flags: append(workspaceFlags(true),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries (0 for all)",
						Value: 10,
					},
				),
			},
			{
				Name:   "interactive",
				Usage:  "Read queries from stdin; '!N' selects the N-th suggestion of the last query",
				Action: interactiveCommand,
				Flags: append(workspaceFlags(false),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: 10,
					},
				),
			},
		},
	}
}

// workspaceFlags returns the flags every command opening a vault takes.
// Commands that record selections or report them need a database.
func workspaceFlags(dbRequired bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "vault",
			Aliases:  []string{"v"},
			Usage:    "Path to the markdown vault directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory for the recency ledger (in-memory if empty)",
			Required: dbRequired,
		},
		&cli.StringSliceFlag{
			Name:  "language",
			Usage: "Stemming language (russian, english); repeatable",
			Value: cli.NewStringSlice("russian", "english"),
		},
	}
}

func openWorkspace(ctx context.Context, c *cli.Context) (*notefind.Workspace, error) {
	opts := []notefind.Option{
		notefind.WithDatabasePath(c.String("db")),
		notefind.WithLanguages(c.StringSlice("language")...),
		notefind.WithLogger(slog.Default()),
	}
	if limit := c.Int("limit"); limit > 0 {
		opts = append(opts, notefind.WithLimit(limit))
	}
	return notefind.Open(ctx, c.String("vault"), opts...)
}

func queryArg(c *cli.Context) (string, error) {
	raw := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("query is required")
	}
	return raw, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	raw, err := queryArg(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(ctx, c)
	if err != nil {
		return err
	}
	defer ws.Close()

	suggestions, err := ws.Suggest(ctx, raw)
	if err != nil {
		return err
	}
	printSuggestions(c.App.Writer, suggestions)
	return nil
}

func selectCommand(c *cli.Context) error {
	ctx := context.Background()

	raw, err := queryArg(c)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(ctx, c)
	if err != nil {
		return err
	}
	defer ws.Close()

	suggestions, err := ws.Suggest(ctx, raw)
	if err != nil {
		return err
	}

	pick := c.Int("pick")
	if pick < 1 || pick > len(suggestions) {
		return fmt.Errorf("no suggestion %d: query %q has %d", pick, raw, len(suggestions))
	}

	display := c.String("display")
	if !c.IsSet("display") {
		display = displayText(raw)
	}

	link, err := ws.Select(ctx, suggestions[pick-1], display)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, link)
	return nil
}

func recentCommand(c *cli.Context) error {
	ctx := context.Background()

	ws, err := openWorkspace(ctx, c)
	if err != nil {
		return err
	}
	defer ws.Close()

	for _, entry := range ws.Recent(c.Int("limit")) {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n",
			time.UnixMilli(entry.Stamp).Format(time.DateTime), entry.Title)
	}
	return nil
}

func interactiveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.String("db") == "" {
		slog.Warn("no --db given, selections are kept for this session only")
	}

	ws, err := openWorkspace(ctx, c)
	if err != nil {
		return err
	}
	defer ws.Close()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		err := ws.Watch(watchCtx, func(err error) {
			if err == nil {
				slog.Info("vault changed, index rebuilt")
			}
		})
		if err != nil && watchCtx.Err() == nil {
			slog.Error("vault watcher stopped", "err", err)
		}
	}()
	defer func() {
		cancelWatch()
		<-watchDone
	}()

	out := c.App.Writer
	var (
		lastQuery   string
		suggestions []suggest.Suggestion
	)

	scanner := bufio.NewScanner(c.App.Reader)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case strings.HasPrefix(line, "!"):
			pick, convErr := strconv.Atoi(strings.TrimPrefix(line, "!"))
			if convErr != nil || pick < 1 || pick > len(suggestions) {
				fmt.Fprintf(out, "no suggestion %q\n", strings.TrimPrefix(line, "!"))
				break
			}
			link, err := ws.Select(ctx, suggestions[pick-1], displayText(lastQuery))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, link)
		default:
			lastQuery = line
			suggestions, err = ws.Suggest(ctx, line)
			if err != nil {
				return err
			}
			printSuggestions(out, suggestions)
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)

	return scanner.Err()
}

// displayText returns the text after the first '|' of a raw query.
func displayText(raw string) string {
	_, display, _ := strings.Cut(raw, "|")
	return display
}

func printSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "no matches")
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(w, "%d: %s\n", i+1, describe(s))
	}
}

func describe(s suggest.Suggestion) string {
	doc := s.Document()
	var b strings.Builder
	b.WriteString(doc.Title)

	switch s := s.(type) {
	case suggest.NoteSuggestion:
		if s.Alias != "" {
			fmt.Fprintf(&b, " (alias %q)", s.Alias)
		}
		if !doc.Exists {
			b.WriteString(" [new]")
		}
		fmt.Fprintf(&b, " [%0.3f]", s.Score)
	case suggest.HeadingSuggestion:
		fmt.Fprintf(&b, " %s %s", strings.Repeat("#", s.Heading.Level), s.Heading.Text)
	case suggest.BlockSuggestion:
		id := s.Block.ID
		if id == "" {
			id = "(new)"
		}
		fmt.Fprintf(&b, " ^%s %s", id, s.Block.Text)
	}
	return b.String()
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
