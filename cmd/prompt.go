package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/game"
)

const (
	helpOption = "? - help"
	exitOption = "X - exit"
)

var errHelp = errors.New("help requested")

// selectFunc shows options under text and returns the chosen one.
type selectFunc func(text string, options []string) (string, error)

func ptermSelect(text string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithDefaultText(text).
		WithOptions(options).
		WithMaxHeight(len(options)).
		Show()
}

// promptInput asks the player through interactive selects. Asking for help
// shows the probability table and repeats the same prompt.
type promptInput struct {
	sel  selectFunc
	help func()
}

func newPromptInput(set *dice.Set) *promptInput {
	return &promptInput{
		sel: ptermSelect,
		help: func() {
			table, err := renderProbabilityTable(set)
			if err != nil {
				pterm.Error.Println(err)
				return
			}
			pterm.DefaultSection.Println("Winning chances")
			pterm.Println(table)
		},
	}
}

func (p *promptInput) Value(ctx context.Context, stage game.Stage, n int) (int, error) {
	options := make([]string, 0, n+2)
	for i := range n {
		options = append(options, strconv.Itoa(i))
	}
	return p.ask(ctx, valuePrompt(stage, n), options)
}

func (p *promptInput) Die(ctx context.Context, options []dice.Die) (int, error) {
	labels := make([]string, 0, len(options)+2)
	for i, d := range options {
		labels = append(labels, fmt.Sprintf("%d - [%s]", i, d))
	}
	return p.ask(ctx, "Choose your die", labels)
}

func (p *promptInput) ask(ctx context.Context, text string, options []string) (int, error) {
	options = append(options, helpOption, exitOption)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		answer, err := p.sel(text, options)
		if err != nil {
			return 0, fmt.Errorf("read answer: %w", err)
		}
		choice, err := parseChoice(answer)
		if errors.Is(err, errHelp) {
			if p.help != nil {
				p.help()
			}
			continue
		}
		return choice, err
	}
}

// parseChoice reads the leading number of an option. The help and exit
// options map to errHelp and game.ErrAborted.
func parseChoice(answer string) (int, error) {
	answer = strings.TrimSpace(answer)
	switch {
	case answer == "":
		return 0, fmt.Errorf("empty answer")
	case strings.HasPrefix(answer, "?"):
		return 0, errHelp
	case strings.HasPrefix(strings.ToUpper(answer), "X"):
		return 0, game.ErrAborted
	}
	head, _, _ := strings.Cut(answer, " - ")
	choice, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("invalid answer %q", answer)
	}
	return choice, nil
}

func valuePrompt(stage game.Stage, n int) string {
	switch stage {
	case game.StageDetermineFirstMover:
		return "Guess the computer's number (0 or 1) to move first"
	case game.StageComputerThrow:
		return fmt.Sprintf("Pick a number between 0 and %d for the computer's throw", n-1)
	case game.StagePlayerThrow:
		return fmt.Sprintf("Pick a number between 0 and %d for your throw", n-1)
	default:
		return fmt.Sprintf("Pick a number between 0 and %d", n-1)
	}
}
