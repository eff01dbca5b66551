package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	tournamentservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	"github.com/Black-And-White-Club/pingpong-bot/config"
	"github.com/Black-And-White-Club/pingpong-bot/db/bundb"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
)

// session holds what every command needs. It is built lazily in Before.
type session struct {
	db      *bundb.DBService
	service tournamentservice.Service
}

func main() {
	s := &session{}

	cliApp := &cli.App{
		Name:  "pongctl",
		Usage: "operate the ping-pong tournament from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Before: func(c *cli.Context) error { return s.open(c) },
		After: func(*cli.Context) error {
			if s.db != nil {
				return s.db.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "register players by name",
				ArgsUsage: "NAME...",
				Action: func(c *cli.Context) error {
					added, err := s.service.AddPlayers(c.Context, c.Args().Slice())
					if err != nil {
						return err
					}
					fmt.Printf("added %d player(s)\n", added)
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "import players from a .csv, .txt or .xlsx file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("import needs a file", 2)
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					added, err := s.service.ImportPlayers(c.Context, filepath.Base(path), data)
					if err != nil {
						return err
					}
					fmt.Printf("imported %d player(s)\n", added)
					return nil
				},
			},
			{
				Name:  "generate",
				Usage: "reset matches and build a fresh bracket from the registered players",
				Action: func(c *cli.Context) error {
					summary, err := s.service.GenerateBracket(c.Context)
					if err != nil {
						return err
					}
					return printJSON(summary)
				},
			},
			{
				Name:      "result",
				Usage:     "record a match score",
				ArgsUsage: "MATCH_ID SCORE1 SCORE2",
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return cli.Exit("result needs MATCH_ID SCORE1 SCORE2", 2)
					}
					nums := make([]int64, 3)
					for i := range nums {
						n, err := strconv.ParseInt(c.Args().Get(i), 10, 64)
						if err != nil {
							return cli.Exit(fmt.Sprintf("argument %d is not a number", i+1), 2)
						}
						nums[i] = n
					}
					summary, err := s.service.SubmitResult(c.Context, tournamentdomain.MatchID(nums[0]), int(nums[1]), int(nums[2]))
					if err != nil {
						return err
					}
					return printJSON(summary)
				},
			},
			{
				Name:  "backfill",
				Usage: "draw round-one losers into open round-two seats",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "seed", Usage: "seed for a reproducible draw"},
				},
				Action: func(c *cli.Context) error {
					var seed *int64
					if c.IsSet("seed") {
						v := c.Int64("seed")
						seed = &v
					}
					filled, err := s.service.Backfill(c.Context, seed)
					if err != nil {
						return err
					}
					if filled > 0 {
						if _, err := s.service.AdvanceWinners(c.Context); err != nil {
							return err
						}
					}
					fmt.Printf("filled %d seat(s)\n", filled)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "clear the bracket",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "keep-players", Usage: "keep players and zero their stats"},
				},
				Action: func(c *cli.Context) error {
					return s.service.ResetTournament(c.Context, c.Bool("keep-players"))
				},
			},
			{
				Name:  "standings",
				Usage: "print the standings table",
				Action: func(c *cli.Context) error {
					standings, err := s.service.Standings(c.Context)
					if err != nil {
						return err
					}
					return printStandings(standings)
				},
			},
			{
				Name:  "export",
				Usage: "write the bracket as Graphviz DOT or the standings chart as PNG",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "dot", Usage: "dot or png"},
					&cli.StringFlag{Name: "out", Usage: "output file (stdout for dot when empty)"},
				},
				Action: func(c *cli.Context) error {
					return s.export(c.Context, c.String("format"), c.String("out"))
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func (s *session) open(c *cli.Context) error {
	if c.Args().Len() == 0 || c.Args().First() == "help" || c.Args().First() == "h" {
		return nil
	}
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// Operation logs go to stderr at warn so they never mix with command output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s.db, err = bundb.NewBunDBService(c.Context, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	s.service = tournamentservice.NewTournamentService(
		s.db.TournamentDB,
		logger,
		tournamentmetrics.NewNoop(),
		otel.Tracer("pongctl"),
		s.db.GetDB(),
		nil,
		tournamentservice.Config{
			Policy: tournamentdomain.PropagationPolicy{OverwriteCompleted: cfg.Tournament.OverwriteCompleted},
		},
	)
	return nil
}

func (s *session) export(ctx context.Context, format, out string) error {
	switch format {
	case "dot":
		dot, err := s.service.ExportBracketDOT(ctx)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = fmt.Print(dot)
			return err
		}
		return os.WriteFile(out, []byte(dot), 0o644)
	case "png":
		if out == "" {
			return cli.Exit("png export needs --out", 2)
		}
		png, err := s.service.StandingsChart(ctx)
		if err != nil {
			return err
		}
		return os.WriteFile(out, png, 0o644)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", format), 2)
	}
}

func printStandings(standings []tournamentdomain.Standing) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tWON\tPLAYED\tPOINTS\tWIN RATE")
	for i, st := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.0f%%\n", i+1, st.Name, st.MatchesWon, st.MatchesPlayed, st.TotalPoints, st.WinRate*100)
	}
	return tw.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
