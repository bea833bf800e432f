package dice

// WinProbability returns the probability that player shows a strictly
// greater face than computer when both dice are thrown once.
func WinProbability(player, computer Die) float64 {
	wins := 0
	for _, pv := range player {
		for _, cv := range computer {
			if pv > cv {
				wins++
			}
		}
	}
	return float64(wins) / float64(Faces*Faces)
}

// ProbabilityTable returns, for every pair of dice in the set, the
// probability that the row die beats the column die. Diagonal entries are
// zero since a die never meets itself in a match.
func (s *Set) ProbabilityTable() [][]float64 {
	table := make([][]float64, len(s.dice))
	for i, player := range s.dice {
		table[i] = make([]float64, len(s.dice))
		for j, computer := range s.dice {
			if i != j {
				table[i][j] = WinProbability(player, computer)
			}
		}
	}
	return table
}
