// Package console is a hot-seat terminal front end: both seats share one
// input stream and one output stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterkuimelis/rawdeal/internal/game"
	"github.com/peterkuimelis/rawdeal/internal/log"
	"github.com/peterkuimelis/rawdeal/internal/view"
)

// ErrInputClosed is returned when the input stream ends while a choice is pending.
var ErrInputClosed = errors.New("input closed")

// Terminal is the shared input/output of a hot-seat match.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal wraps the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Seat returns the controller for one player.
func (t *Terminal) Seat(player int) *Controller {
	return &Controller{term: t, player: player}
}

// ChooseDeck lists deck files and reads a selection for the named player.
func (t *Terminal) ChooseDeck(label string, files []string) (int, error) {
	fmt.Fprintf(t.out, "\nChoose a deck for %s:\n", label)
	for i, f := range files {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, filepath.Base(f))
	}
	return t.readChoice(len(files))
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readChoice reads a 1-based menu choice and returns it 0-based.
func (t *Terminal) readChoice(count int) (int, error) {
	for {
		t.printf("> ")
		line, err := t.readLine()
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > count {
			t.printf("Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}

// readOptional is readChoice with 0 meaning "none", returned as -1.
func (t *Terminal) readOptional(count int) (int, error) {
	for {
		t.printf("> ")
		line, err := t.readLine()
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > count {
			t.printf("Enter a number between 0 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}

func (t *Terminal) readAmount(max int) (int, error) {
	for {
		t.printf("> ")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > max {
			t.printf("Enter a number between 0 and %d\n", max)
			continue
		}
		return n, nil
	}
}

func (t *Terminal) readCardIndices(count, min, max int) ([]int, error) {
	for {
		t.printf("> ")
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		parts := strings.Fields(line)
		if len(parts) < min || len(parts) > max {
			t.printf("Enter %d-%d numbers separated by spaces\n", min, max)
			continue
		}

		var indices []int
		seen := make(map[int]bool)
		valid := true
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 || n > count || seen[n] {
				t.printf("Each number must be between 1 and %d and appear once\n", count)
				valid = false
				break
			}
			seen[n] = true
			indices = append(indices, n-1)
		}
		if valid {
			return indices, nil
		}
	}
}

func (t *Terminal) readYesNo() (bool, error) {
	for {
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			t.printf("Enter y or n: ")
		}
	}
}

// Controller implements game.PlayerController for one seat of a Terminal.
type Controller struct {
	term   *Terminal
	player int
}

func (c *Controller) label(state *game.GameState) string {
	return fmt.Sprintf("P%d (%s)", c.player+1, state.Players[c.player].Name())
}

// ChooseAction implements game.PlayerController.
func (c *Controller) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	c.renderState(state)
	c.term.printf("\n%s, choose an action:\n", c.label(state))
	for _, a := range view.ActionViews(actions) {
		c.term.printf("  %d) %s\n", a.Index+1, a.Desc)
	}
	idx, err := c.term.readChoice(len(actions))
	if err != nil {
		return game.Action{}, err
	}
	return actions[idx], nil
}

// ChooseZone implements game.PlayerController.
func (c *Controller) ChooseZone(ctx context.Context, state *game.GameState, zones []game.ZoneRef) (int, error) {
	c.term.printf("\nWhich cards do you want to see?\n")
	for _, z := range view.ZoneViews(zones) {
		c.term.printf("  %d) %s\n", z.Index+1, z.Desc)
	}
	return c.term.readChoice(len(zones))
}

// ChoosePlay implements game.PlayerController.
func (c *Controller) ChoosePlay(ctx context.Context, state *game.GameState, plays []game.Play) (int, error) {
	c.term.printf("\nChoose a card to play (0 to go back):\n")
	for _, p := range view.PlayViews(plays) {
		c.term.printf("  %d) %s\n", p.Index+1, p.Desc)
	}
	return c.term.readOptional(len(plays))
}

// ChooseReversal implements game.PlayerController.
func (c *Controller) ChooseReversal(ctx context.Context, state *game.GameState, attack game.Play, candidates []*game.CardInstance) (int, error) {
	c.term.printf("\n%s, your opponent plays %s\n", c.label(state), view.FormatPlay(attack))
	c.term.printf("Reverse it? (0 to decline):\n")
	for _, r := range view.ReversalViews(candidates) {
		c.term.printf("  %d) %s\n", r.Index+1, r.Desc)
	}
	return c.term.readOptional(len(candidates))
}

// ChooseAmount implements game.PlayerController.
func (c *Controller) ChooseAmount(ctx context.Context, state *game.GameState, prompt string, max int) (int, error) {
	c.term.printf("\n%s, %s (0-%d):\n", c.label(state), prompt, max)
	return c.term.readAmount(max)
}

// ChooseCards implements game.PlayerController.
func (c *Controller) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	c.term.printf("\n%s, %s (select %d", c.label(state), prompt, min)
	if max != min {
		c.term.printf("-%d", max)
	}
	c.term.printf(")\n")
	for _, cv := range view.CardViews(candidates) {
		c.term.printf("  %d) %s F:%d D:%s SV:%d\n", cv.Index+1, cv.Title, cv.Fortitude, cv.Damage, cv.StunValue)
	}
	indices, err := c.term.readCardIndices(len(candidates), min, max)
	if err != nil {
		return nil, err
	}
	result := make([]*game.CardInstance, 0, len(indices))
	for _, idx := range indices {
		result = append(result, candidates[idx])
	}
	return result, nil
}

// ChooseJockeying implements game.PlayerController.
func (c *Controller) ChooseJockeying(ctx context.Context, state *game.GameState) (game.JockeyingEffect, error) {
	c.term.printf("\n%s, choose a Jockeying for Position effect:\n", c.label(state))
	for _, o := range view.JockeyingViews() {
		c.term.printf("  %d) %s\n", o.Index+1, o.Desc)
	}
	idx, err := c.term.readChoice(len(view.JockeyingOptions))
	if err != nil {
		return game.JockeyingNone, err
	}
	return view.JockeyingOptions[idx], nil
}

// ChooseYesNo implements game.PlayerController.
func (c *Controller) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	c.term.printf("\n%s, %s (y/n): ", c.label(state), prompt)
	return c.term.readYesNo()
}

// Notify implements game.PlayerController. Both seats receive every public
// event, so only seat one echoes them; private events reach only their seat.
func (c *Controller) Notify(ctx context.Context, event log.GameEvent) error {
	if c.player != 0 && event.Type != log.EventShowCards {
		return nil
	}
	c.term.printf("%s\n", log.FormatEvent(event))
	return nil
}

func (c *Controller) renderState(state *game.GameState) {
	sv := view.BuildStateView(state, c.player)
	t := c.term

	t.printf("\n------------------------------------------------------------\n")
	opp := sv.Opponent
	t.printf("  OPPONENT %s  Fortitude: %d  Hand: %d  Arsenal: %d  Ringside: %d\n",
		opp.Superstar, opp.Fortitude, opp.HandCount, opp.ArsenalCount, len(opp.Ringside))
	t.printf("  Ring area: %s\n", joinOrDash(opp.RingArea))
	t.printf("  ..........................................................\n")
	you := sv.You
	t.printf("  Ring area: %s\n", joinOrDash(you.RingArea))
	t.printf("  YOU %s  Fortitude: %d  Hand: %d  Arsenal: %d  Ringside: %d\n",
		you.Superstar, you.Fortitude, you.HandCount, you.ArsenalCount, len(you.Ringside))
	t.printf("------------------------------------------------------------\n")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	if sv.Jockeying != "" {
		turnInfo += " | Jockeying " + sv.Jockeying
	}
	t.printf("%s\n", turnInfo)

	if len(you.Hand) > 0 {
		t.printf("\nHand:\n")
		for _, cv := range you.Hand {
			t.printf("  [%d] %s (%s) F:%d D:%s SV:%d\n", cv.Index+1, cv.Title, strings.Join(cv.Types, "/"), cv.Fortitude, cv.Damage, cv.StunValue)
		}
	}
}

func joinOrDash(titles []string) string {
	if len(titles) == 0 {
		return "-"
	}
	return strings.Join(titles, ", ")
}
