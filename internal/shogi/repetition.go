package shogi

// GetRepetition returns how many earlier plies share the current hash
// (i.e. the same board and side to move; hands are not part of the hash),
// not counting the current ply itself.
func (p *Position) GetRepetition() int {
	count := 0
	for ply := 0; ply < p.Ply; ply++ {
		if p.HashHistory[ply] == p.hash {
			count++
		}
	}
	return count
}

// IsRepetition reports whether the current position is a (fourfold)
// repetition, and separately whether it is a check repetition: one side
// has been giving continuous check for the whole cycle, which is scored
// as a loss for the checking side rather than a draw (spec §4.E).
func (p *Position) IsRepetition() (isRepetition bool, isCheckRepetition bool) {
	if p.GetRepetition() < 3 {
		return false, false
	}
	counts := p.SequentCheckCount[p.Ply]
	return true, counts[White] >= 7 || counts[Black] >= 7
}
