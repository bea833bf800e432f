package main

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/fairness"
	"github.com/luca-patrignani/fair-dice/domain/game"
	"github.com/luca-patrignani/fair-dice/ledger"
)

const testDice = "2,2,4,4,9,9 1,1,6,6,8,8 3,3,5,5,7,7"

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	pterm.SetDefaultOutput(io.Discard)
	os.Exit(m.Run())
}

func testSet(t *testing.T) *dice.Set {
	t.Helper()
	set, err := loadDice(strings.Fields(testDice))
	if err != nil {
		t.Fatalf("load dice: %v", err)
	}
	return set
}

// scriptedSelect answers prompts in order and records the offered options.
func scriptedSelect(answers ...string) (selectFunc, *[][]string) {
	var offered [][]string
	return func(text string, options []string) (string, error) {
		offered = append(offered, options)
		if len(answers) == 0 {
			return "", errors.New("no scripted answer left")
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}, &offered
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		answer   string
		expected int
		err      error
	}{
		{"0", 0, nil},
		{"5", 5, nil},
		{" 3 ", 3, nil},
		{"2 - [2,2,4,4,9,9]", 2, nil},
		{helpOption, 0, errHelp},
		{exitOption, 0, game.ErrAborted},
		{"x", 0, game.ErrAborted},
	}
	for _, tt := range tests {
		got, err := parseChoice(tt.answer)
		if !errors.Is(err, tt.err) {
			t.Errorf("parseChoice(%q) error = %v, expected %v", tt.answer, err, tt.err)
			continue
		}
		if got != tt.expected {
			t.Errorf("parseChoice(%q) = %d, expected %d", tt.answer, got, tt.expected)
		}
	}
	for _, bad := range []string{"", "seven", "- 1"} {
		if _, err := parseChoice(bad); err == nil {
			t.Errorf("parseChoice(%q) should fail", bad)
		}
	}
}

// TestPromptValueOffersRangeAndHelp verifies that a value prompt offers
// every number in range plus help and exit, and that help repeats the prompt.
func TestPromptValueOffersRangeAndHelp(t *testing.T) {
	sel, offered := scriptedSelect(helpOption, "4")
	helps := 0
	in := &promptInput{sel: sel, help: func() { helps++ }}

	v, err := in.Value(context.Background(), game.StagePlayerThrow, 6)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != 4 {
		t.Fatalf("expected 4, got %d", v)
	}
	if helps != 1 {
		t.Fatalf("expected help to be shown once, got %d", helps)
	}
	if len(*offered) != 2 {
		t.Fatalf("expected the prompt to be repeated after help, got %d prompts", len(*offered))
	}
	want := "0 1 2 3 4 5 " + helpOption + " " + exitOption
	if got := strings.Join((*offered)[0], " "); got != want {
		t.Fatalf("expected options %q, got %q", want, got)
	}
}

func TestPromptExit(t *testing.T) {
	sel, _ := scriptedSelect(exitOption)
	in := &promptInput{sel: sel}
	if _, err := in.Value(context.Background(), game.StageDetermineFirstMover, 2); !errors.Is(err, game.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestPromptCancelledContext(t *testing.T) {
	sel, offered := scriptedSelect("0")
	in := &promptInput{sel: sel}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := in.Value(ctx, game.StageDetermineFirstMover, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(*offered) != 0 {
		t.Fatal("no prompt should be shown once the context is cancelled")
	}
}

func TestPromptDie(t *testing.T) {
	set := testSet(t)
	sel, offered := scriptedSelect("1 - [1,1,6,6,8,8]")
	in := &promptInput{sel: sel}

	i, err := in.Die(context.Background(), set.Dice())
	if err != nil {
		t.Fatalf("die: %v", err)
	}
	if i != 1 {
		t.Fatalf("expected index 1, got %d", i)
	}
	if (*offered)[0][0] != "0 - [2,2,4,4,9,9]" {
		t.Fatalf("unexpected die label %q", (*offered)[0][0])
	}
}

func TestProbabilityTableData(t *testing.T) {
	data := probabilityTableData(testSet(t))
	if len(data) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(data))
	}
	for i, row := range data {
		if len(row) != 4 {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
	}
	for i := 1; i < 4; i++ {
		if data[i][i] != "-" {
			t.Errorf("diagonal cell %d should be empty, got %q", i, data[i][i])
		}
	}
	// 2,2,4,4,9,9 beats 1,1,6,6,8,8 in 20 of 36 pairs
	if data[1][2] != "56%" {
		t.Fatalf("expected 56%%, got %q", data[1][2])
	}
	if _, err := renderProbabilityTable(testSet(t)); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestDescribeCommitAndReveal(t *testing.T) {
	key := make([]byte, fairness.KeySize)
	digest := fairness.Digest(1, key)
	commit := describe(game.Event{Kind: game.EventCommit, Commitment: digest})
	if !strings.Contains(commit, digest) {
		t.Fatalf("commit line should show the HMAC, got %q", commit)
	}
	rev := fairness.Reveal{Range: 6, Value: 3, Key: key, Peer: 2, Result: 5, Commitment: digest}
	line := describe(game.Event{Kind: game.EventReveal, Reveal: &rev})
	if !strings.Contains(line, hex.EncodeToString(key)) || !strings.Contains(line, "= 5") {
		t.Fatalf("reveal line should show key and result, got %q", line)
	}
}

// TestPlayRoundRecordsTranscript plays a full match with the first option
// always chosen and checks the sealed transcript.
func TestPlayRoundRecordsTranscript(t *testing.T) {
	set := testSet(t)
	answers := make([]string, 0, 8)
	for range 8 {
		answers = append(answers, "0")
	}
	sel, _ := scriptedSelect(answers...)
	in := &promptInput{sel: sel}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, transcript, err := playRound(context.Background(), 1, set, fairness.NewRandom(nil), in, logger)
	if err != nil {
		t.Fatalf("play round: %v", err)
	}
	if res.PlayerDie == res.ComputerDie {
		t.Fatal("both sides hold the same die")
	}
	if res.Outcome != game.Compare(res.PlayerThrow.Face, res.ComputerThrow.Face) {
		t.Fatalf("inconsistent outcome %s", res.Outcome)
	}
	if !strings.Contains(outcomeBox(res), res.PlayerDie.String()) {
		t.Fatal("outcome box should show the player's die")
	}
	// genesis, 3 commits, 3 reveals, 2 dice, 2 throws, outcome
	if transcript.Len() != 12 {
		t.Fatalf("expected 12 transcript entries, got %d", transcript.Len())
	}
	data, err := transcript.Export(ledger.NewSigner())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := ledger.VerifySealed(data); err != nil {
		t.Fatalf("verify sealed transcript: %v", err)
	}
}

func TestRunVerify(t *testing.T) {
	key := make([]byte, fairness.KeySize)
	key[0] = 7
	keyHex := hex.EncodeToString(key)
	digest := fairness.Digest(4, key)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"match", []string{"-value", "4", "-key", keyHex, "-hmac", digest}, 0},
		{"wrong value", []string{"-value", "5", "-key", keyHex, "-hmac", digest}, 1},
		{"bad key", []string{"-value", "4", "-key", "zz", "-hmac", digest}, 1},
		{"missing hmac", []string{"-value", "4", "-key", keyHex}, 1},
		{"unknown flag", []string{"-nonce", "1"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := runVerify("verify", tt.args); code != tt.code {
				t.Fatalf("expected exit code %d, got %d", tt.code, code)
			}
		})
	}
}

func TestRunVerifyTranscript(t *testing.T) {
	tr, err := ledger.NewTranscript("match")
	if err != nil {
		t.Fatalf("new transcript: %v", err)
	}
	if err := tr.Append("outcome", "draw"); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := tr.Export(ledger.NewSigner())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code := runVerify("verify", []string{"-transcript", path}); code != 0 {
		t.Fatalf("expected valid transcript, got exit code %d", code)
	}
	forged := strings.Replace(string(data), `"draw"`, `"win"`, 1)
	if err := os.WriteFile(path, []byte(forged), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code := runVerify("verify", []string{"-transcript", path}); code != 1 {
		t.Fatalf("expected forged transcript to fail, got exit code %d", code)
	}
}

func TestLoadDiceErrors(t *testing.T) {
	if _, err := loadDice([]string{"2,2,4,4,9,9", "1,1,6,6,8,8"}); !errors.Is(err, dice.ErrTooFewDice) {
		t.Fatalf("expected ErrTooFewDice, got %v", err)
	}
	if _, err := loadDice([]string{"2,2,4", "1,1,6,6,8,8", "3,3,5,5,7,7"}); !errors.Is(err, dice.ErrInvalidDie) {
		t.Fatalf("expected ErrInvalidDie, got %v", err)
	}
}
