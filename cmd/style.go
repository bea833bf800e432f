package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/fair-dice/domain/dice"
	"github.com/luca-patrignani/fair-dice/domain/game"
)

func printBanner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("F", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("air ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("D", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("ice", pterm.FgDarkGray.ToStyle()),
	).Render()
}

// probabilityTableData lays out the chance that the row die beats the
// column die in a single throw.
func probabilityTableData(set *dice.Set) [][]string {
	all := set.Dice()
	table := set.ProbabilityTable()
	header := []string{"you \\ computer"}
	for _, d := range all {
		header = append(header, d.String())
	}
	data := [][]string{header}
	for i, d := range all {
		row := []string{d.String()}
		for j := range all {
			if i == j {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.0f%%", table[i][j]*100))
		}
		data = append(data, row)
	}
	return data
}

func renderProbabilityTable(set *dice.Set) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithData(probabilityTableData(set)).Srender()
}

// describe renders an event the way it is shown to the player.
func describe(ev game.Event) string {
	switch ev.Kind {
	case game.EventCommit:
		return pterm.Sprintf("Computer commitment (HMAC): %s", pterm.LightYellow(ev.Commitment))
	case game.EventReveal:
		r := ev.Reveal
		return pterm.Sprintf("Computer value: %d, key: %s\nYour value: %d, result: (%d + %d) mod %d = %d",
			r.Value, r.KeyHex(), r.Peer, r.Value, r.Peer, r.Range, r.Result)
	case game.EventDie:
		return pterm.Sprintf("%s chose die [%s]", sideName(ev.Side), ev.Die)
	case game.EventThrow:
		return pterm.Sprintf("%s rolled %s", sideName(ev.Side), pterm.LightCyan(strconv.Itoa(ev.Throw.Face)))
	case game.EventOutcome:
		return pterm.Sprintf("Outcome: %s", ev.Outcome)
	default:
		return string(ev.Kind)
	}
}

func sideName(s game.Side) string {
	if s == game.Player {
		return "You"
	}
	return "Computer"
}

func outcomeBox(res game.Result) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	var title string
	switch res.Outcome {
	case game.Win:
		title = pterm.LightGreen("|YOU WIN|")
	case game.Loss:
		title = pterm.LightRed("|COMPUTER WINS|")
	default:
		title = pterm.LightYellow("|DRAW|")
	}
	return pbox.WithTitle(title).WithTitleTopCenter().Sprintf(
		"Your die: [%s] rolled %d\nComputer die: [%s] rolled %d",
		res.PlayerDie, res.PlayerThrow.Face,
		res.ComputerDie, res.ComputerThrow.Face,
	)
}

// ptermObserver prints every public artifact as soon as the match produces
// it. Reveals are checked against their commitment on the spot.
type ptermObserver struct{}

func (ptermObserver) Observe(ev game.Event) {
	switch ev.Kind {
	case game.EventReveal:
		pterm.Info.Println(describe(ev))
		if ev.Reveal.Verify() {
			pterm.Success.Println("Commitment verified")
		} else {
			pterm.Error.Println("Commitment does not match the revealed value")
		}
	case game.EventOutcome:
		// shown in the outcome box
	default:
		pterm.Info.Println(describe(ev))
	}
}
