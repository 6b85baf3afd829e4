package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"notty/game"
)

// Console reads choices line by line and prints the table as plain text.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	once  sync.Once
	lines chan string
	err   error // set before lines is closed
}

func New(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewScanner(r), out: w, lines: make(chan string)}
}

// scan feeds lines to readLine until input is exhausted. It outlives a cancelled prompt.
func (c *Console) scan() {
	defer close(c.lines)
	for c.in.Scan() {
		c.lines <- c.in.Text()
	}
	c.err = c.in.Err()
}

// readLine returns the next trimmed line, io.EOF once input is exhausted, or ctx.Err() if
// ctx is cancelled first.
func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	c.once.Do(func() { go c.scan() })
	fmt.Fprint(c.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return "", c.err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// readIndex keeps asking until the answer is a number in [lo, hi].
func (c *Console) readIndex(ctx context.Context, prompt string, lo, hi int) (int, error) {
	for {
		line, err := c.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(c.out, "enter a number from %d to %d\n", lo, hi)
	}
}

func (c *Console) ChooseAction(ctx context.Context, _ *game.GameState, options []game.ActionType) (game.ActionType, error) {
	for i, a := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, a)
	}
	for {
		line, err := c.readLine(ctx, "action> ")
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		if a, err := game.ParseActionType(line); err == nil {
			for _, option := range options {
				if option == a {
					return a, nil
				}
			}
		}
		fmt.Fprintln(c.out, "choose one of the listed actions")
	}
}

func (c *Console) ChooseCount(ctx context.Context, max int) (int, error) {
	return c.readIndex(ctx, fmt.Sprintf("how many cards (1-%d)> ", max), 1, max)
}

func (c *Console) ChoosePlayer(ctx context.Context, gs *game.GameState, targets []int) (int, error) {
	for i, seat := range targets {
		p := gs.Players[seat]
		fmt.Fprintf(c.out, "  %d) %s (%d cards)\n", i+1, p.Name, p.Hand.Size())
	}
	n, err := c.readIndex(ctx, "steal from> ", 1, len(targets))
	if err != nil {
		return 0, err
	}
	return targets[n-1], nil
}

func (c *Console) ChooseCard(ctx context.Context, hand []game.Card) (game.Card, error) {
	c.printHand(hand)
	n, err := c.readIndex(ctx, "discard> ", 1, len(hand))
	if err != nil {
		return game.Card{}, err
	}
	return hand[n-1], nil
}

// ChooseCards reads space-separated card numbers. An empty line gives up and returns nil.
func (c *Console) ChooseCards(ctx context.Context, hand []game.Card, valid func([]game.Card) bool) ([]game.Card, error) {
	c.printHand(hand)
	for {
		line, err := c.readLine(ctx, "group> ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}
		cards, ok := pick(hand, strings.Fields(line))
		if ok && valid(cards) {
			return cards, nil
		}
		fmt.Fprintln(c.out, "not a valid group")
	}
}

func pick(hand []game.Card, fields []string) ([]game.Card, bool) {
	seen := make(map[int]bool, len(fields))
	cards := make([]game.Card, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(hand) || seen[n] {
			return nil, false
		}
		seen[n] = true
		cards = append(cards, hand[n-1])
	}
	return cards, true
}

func (c *Console) printHand(hand []game.Card) {
	for i, card := range hand {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, card)
	}
}

// Render prints every seat. Only human hands are shown face up.
func (c *Console) Render(gs *game.GameState) {
	fmt.Fprintf(c.out, "deck: %d cards\n", gs.Deck.Size())
	for i, p := range gs.Players {
		marker := " "
		if i == gs.CurrentPlayer {
			marker = ">"
		}
		if p.Human {
			fmt.Fprintf(c.out, "%s %s: %v\n", marker, p.Name, p.Hand.Cards())
		} else {
			fmt.Fprintf(c.out, "%s %s: %d cards\n", marker, p.Name, p.Hand.Size())
		}
	}
}

func (c *Console) NotifyWin(winner *game.Player) {
	fmt.Fprintf(c.out, "%s wins!\n", winner.Name)
}
