package holdem

// Pot is an amount of chips and the players who can win it
// Winners is nil until the pot has been awarded
type Pot struct {
	Amount          int       `json:"amount"`
	EligiblePlayers []*Player `json:"eligiblePlayers"`
	Winners         []*Player `json:"winners,omitempty"`
}

// IsEligible returns true if the player can win the pot
func (p *Pot) IsEligible(player *Player) bool {
	for _, eligible := range p.EligiblePlayers {
		if eligible == player {
			return true
		}
	}

	return false
}

// references returns true if the pot refers to the player
func (p *Pot) references(player *Player) bool {
	if p.IsEligible(player) {
		return true
	}

	for _, winner := range p.Winners {
		if winner == player {
			return true
		}
	}

	return false
}
