package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/fair-dice/config"
	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/fairness"
	"github.com/luca-patrignani/fair-dice/domain/game"
	"github.com/luca-patrignani/fair-dice/ledger"
)

const exampleDice = "2,2,4,4,9,9 1,1,6,6,8,8 3,3,5,5,7,7"

func main() {
	name := filepath.Base(os.Args[0])
	if len(os.Args) > 1 && os.Args[1] == "verify" {
		os.Exit(runVerify(name+" verify", os.Args[2:]))
	}

	cfg, err := config.Load(name, os.Args[1:])
	if err != nil {
		config.Exitf("%v", err)
	}
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		config.Exitf("%v", err)
	}
	pterm.DefaultLogger.Level = level

	// Create a new slog logger backed by the default PTerm logger
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	set, err := loadDice(cfg.Dice)
	if err != nil {
		config.Exitf("%v\nexample: %s %s", err, name, exampleDice)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, set, logger)
	stop()
	if errors.Is(err, game.ErrAborted) {
		pterm.Info.Println("Match aborted, no commitment was revealed.")
		return
	}
	if err != nil {
		logger.Error("match failed", "error", err)
		config.Exitf("%v", err)
	}
}

func loadDice(args []string) (*dice.Set, error) {
	parsed, err := dice.ParseDice(args)
	if err != nil {
		return nil, err
	}
	return dice.NewSet(parsed)
}

func run(ctx context.Context, cfg config.Config, set *dice.Set, logger *slog.Logger) error {
	if cfg.Banner {
		printBanner()
	}
	pterm.Info.Println("Answer \"?\" at any prompt to see the winning chances of every die.")

	src := fairness.NewRandom(nil)
	signer := ledger.NewSigner()
	input := newPromptInput(set)
	for round := 1; round <= cfg.Rounds; round++ {
		if cfg.Rounds > 1 {
			pterm.DefaultSection.Printfln("Match %d of %d", round, cfg.Rounds)
		}
		res, transcript, err := playRound(ctx, round, set, src, input, logger)
		if err != nil {
			return err
		}
		pterm.Println(outcomeBox(res))
		if cfg.Transcript {
			data, err := transcript.Export(signer)
			if err != nil {
				return fmt.Errorf("export transcript: %w", err)
			}
			pterm.Println(string(data))
		}
	}
	return nil
}

// playRound plays one match and records its public artifacts in a fresh
// transcript.
func playRound(ctx context.Context, round int, set *dice.Set, src fairness.Source, input game.PeerInput, logger *slog.Logger) (game.Result, *ledger.Transcript, error) {
	transcript, err := ledger.NewTranscript(fmt.Sprintf("match %d", round))
	if err != nil {
		return game.Result{}, nil, err
	}
	m := game.NewMatch(set, src, input)
	m.Observer = ptermObserver{}
	m.Recorder = transcript
	m.Logger = logger.With("match", round)

	res, err := m.Play(ctx)
	if err != nil {
		return game.Result{}, nil, err
	}
	return res, transcript, nil
}
