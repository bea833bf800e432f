package game

type Stage string

const (
	StageDetermineFirstMover Stage = "determine-first-mover"
	StageSelectDice          Stage = "select-dice"
	StageComputerThrow       Stage = "computer-throw"
	StagePlayerThrow         Stage = "player-throw"
	StageCompare             Stage = "compare"
	StageDone                Stage = "done"
	StageAborted             Stage = "aborted"
)

// Terminal reports whether no further stage follows s.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageAborted
}

// Returns the stage that follows current. Terminal stages stay where they
// are and an unknown stage restarts from the coin flip.
func nextStage(current Stage) Stage {
	stages := []Stage{
		StageDetermineFirstMover,
		StageSelectDice,
		StageComputerThrow,
		StagePlayerThrow,
		StageCompare,
		StageDone,
	}
	if current == StageAborted {
		return StageAborted
	}
	for i, s := range stages {
		if s == current {
			if i < len(stages)-1 {
				return stages[i+1]
			}
			return s
		}
	}
	return StageDetermineFirstMover
}
