package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
	"github.com/peterkuimelis/rawdeal/internal/config"
	"github.com/peterkuimelis/rawdeal/internal/console"
	"github.com/peterkuimelis/rawdeal/internal/deck"
	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
)

func main() {
	cmd := &cli.Command{
		Name:  "rawdeal",
		Usage: "Raw Deal match engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Usage: "directory holding cards.json and superstar.json (overrides RAWDEAL_DATA_DIR)"},
			&cli.StringFlag{Name: "effects", Usage: "card effects YAML file (default: built-in table)"},
			&cli.StringFlag{Name: "log-level", Usage: "diagnostics level: debug, info, warn, error"},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play a hot-seat match in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "deck1", Usage: "P1 deck file (default: choose from the decks directory)"},
					&cli.StringFlag{Name: "deck2", Usage: "P2 deck file (default: choose from the decks directory)"},
					&cli.IntFlag{Name: "deck1-index", Value: 1, Usage: "deck number inside a YAML deck file for P1"},
					&cli.IntFlag{Name: "deck2-index", Value: 1, Usage: "deck number inside a YAML deck file for P2"},
					&cli.StringFlag{Name: "decks", Usage: "directory to list deck files from (overrides RAWDEAL_DECKS_DIR)"},
					&cli.BoolFlag{Name: "shuffle", Usage: "shuffle both arsenals before the starting hands"},
					&cli.Int64Flag{Name: "seed", Usage: "shuffle seed (0 = random)"},
					&cli.IntFlag{Name: "max-turns", Usage: "end the match without a winner after this many turns"},
					&cli.StringFlag{Name: "transcript", Usage: "also write the match transcript to this file"},
				},
				Action: runPlay,
			},
			{
				Name:      "validate",
				Usage:     "Check deck files against the catalog",
				ArgsUsage: "DECKFILE...",
				Action:    runValidate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env holds what both subcommands need: settings, logger, catalog, effects.
type env struct {
	cfg     config.Config
	diag    *zap.Logger
	catalog *catalog.Catalog
	effects *game.EffectTable
}

func loadEnv(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("data") {
		cfg.DataDir = cmd.String("data")
	}
	if cmd.IsSet("effects") {
		cfg.EffectsFile = cmd.String("effects")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	diag, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cat, err := catalog.Load(cfg.CardsPath(), cfg.SuperstarsPath())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	diag.Debug("catalog loaded", zap.Int("cards", len(cat.Titles())), zap.String("dir", cfg.DataDir))

	var effects *game.EffectTable
	if cfg.EffectsFile != "" {
		if effects, err = game.LoadEffects(cfg.EffectsFile); err != nil {
			return nil, fmt.Errorf("load effects: %w", err)
		}
	}
	return &env{cfg: cfg, diag: diag, catalog: cat, effects: effects}, nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.diag.Sync() }()

	cfg := e.cfg
	if cmd.IsSet("decks") {
		cfg.DecksDir = cmd.String("decks")
	}
	if cmd.IsSet("shuffle") {
		cfg.Shuffle = cmd.Bool("shuffle")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}

	term := console.NewTerminal(os.Stdin, os.Stdout)

	var lists [2]deck.List
	for p, name := range []string{"deck1", "deck2"} {
		label := fmt.Sprintf("P%d", p+1)
		if path := cmd.String(name); path != "" {
			lists[p], err = deck.LoadOne(path, cmd.Int(name+"-index"))
		} else {
			lists[p], err = chooseDeck(term, label, cfg.DecksDir)
		}
		if err != nil {
			return fmt.Errorf("%s deck: %w", label, err)
		}
	}

	var seats [2]struct {
		cards []*catalog.Card
		star  *catalog.Superstar
	}
	for p, l := range lists {
		cards, star, err := l.Resolve(e.catalog)
		if err != nil {
			return err
		}
		seats[p].cards, seats[p].star = cards, star
	}

	var logger log.EventLogger = log.NewMemoryLogger()
	if path := cmd.String("transcript"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create transcript: %w", err)
		}
		defer f.Close()
		logger = log.NewTextLogger(f)
	}

	m := game.NewMatch(game.MatchConfig{
		Deck0:      seats[0].cards,
		Deck1:      seats[1].cards,
		Superstar0: seats[0].star,
		Superstar1: seats[1].star,
		Logger:     logger,
		Diag:       e.diag,
		Effects:    e.effects,
		Shuffle:    cfg.Shuffle,
		Seed:       cfg.Seed,
		MaxTurns:   cmd.Int("max-turns"),
	}, term.Seat(0), term.Seat(1))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if _, err := m.Run(ctx); err != nil {
		if errors.Is(err, console.ErrInputClosed) || errors.Is(err, context.Canceled) {
			fmt.Println("\nMatch abandoned.")
			return nil
		}
		return err
	}
	fmt.Printf("\n%s\n", m.State.Result)
	return nil
}

// chooseDeck lets a player pick a deck file from dir, then a deck inside it
// when the file holds several.
func chooseDeck(term *console.Terminal, label, dir string) (deck.List, error) {
	files, err := deck.Discover(dir)
	if err != nil {
		return deck.List{}, err
	}
	if len(files) == 0 {
		return deck.List{}, fmt.Errorf("no deck files in %s", dir)
	}
	idx, err := term.ChooseDeck(label, files)
	if err != nil {
		return deck.List{}, err
	}
	lists, err := deck.Load(files[idx])
	if err != nil {
		return deck.List{}, err
	}
	if len(lists) == 0 {
		return deck.List{}, fmt.Errorf("%s holds no decks", files[idx])
	}
	if len(lists) == 1 {
		return lists[0], nil
	}
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = fmt.Sprintf("%s (%s)", l.Name, l.Superstar)
	}
	idx, err = term.ChooseDeck(label, names)
	if err != nil {
		return deck.List{}, err
	}
	return lists[idx], nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.New("validate: no deck files given")
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.diag.Sync() }()

	invalid := 0
	for _, path := range cmd.Args().Slice() {
		lists, err := deck.Load(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			invalid++
			continue
		}
		for _, l := range lists {
			if err := deck.Check(l.Titles, e.catalog, l.Superstar); err != nil {
				fmt.Printf("%s: %s: %v\n", filepath.Base(path), l.Name, err)
				invalid++
				continue
			}
			fmt.Printf("%s: %s (%s) is valid\n", filepath.Base(path), l.Name, l.Superstar)
		}
	}
	if invalid > 0 {
		return cli.Exit(fmt.Sprintf("%d invalid deck(s)", invalid), 1)
	}
	return nil
}
