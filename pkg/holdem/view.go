package holdem

import (
	"pokertable-server/pkg/deck"
)

// PlayerView is a player as seen by a viewer
// HoleCards is only set when the viewer is allowed to see them, and LegalActions only when the
// viewer is the player
type PlayerView struct {
	ID           string          `json:"id"`
	StackSize    int             `json:"stackSize"`
	Bet          int             `json:"bet"`
	Raise        *int            `json:"raise,omitempty"`
	Folded       bool            `json:"folded"`
	ShowCards    bool            `json:"showCards"`
	Left         bool            `json:"left"`
	HoleCards    []deck.CardView `json:"holeCards,omitempty"`
	LegalActions *[]Action       `json:"legalActions,omitempty"`
}

// PotView is a pot as seen by a viewer
type PotView struct {
	Amount          int           `json:"amount"`
	EligiblePlayers []*PlayerView `json:"eligiblePlayers"`
	Winners         []*PlayerView `json:"winners,omitempty"`
}

// TableView is the table as seen by a viewer
// The deck and the last raise are never part of a view
type TableView struct {
	BuyIn              int             `json:"buyIn"`
	SmallBlind         int             `json:"smallBlind"`
	BigBlind           int             `json:"bigBlind"`
	BigBlindPosition   *int            `json:"bigBlindPosition,omitempty"`
	SmallBlindPosition *int            `json:"smallBlindPosition,omitempty"`
	DealerPosition     *int            `json:"dealerPosition,omitempty"`
	CurrentPosition    *int            `json:"currentPosition,omitempty"`
	CurrentBet         *int            `json:"currentBet,omitempty"`
	CurrentRound       *Round          `json:"currentRound,omitempty"`
	HandNumber         int             `json:"handNumber"`
	CommunityCards     []deck.CardView `json:"communityCards"`
	Seats              []*PlayerView   `json:"seats"`
	Pots               []*PotView      `json:"pots"`
	Winners            []*PlayerView   `json:"winners,omitempty"`
}

// NewPlayerView projects the player for the viewer
func NewPlayerView(viewerID string, p *Player) *PlayerView {
	isSelf := p.ID == viewerID
	canSeeHoleCards := !p.Folded && (isSelf || p.ShowCards)

	view := &PlayerView{
		ID:        p.ID,
		StackSize: p.StackSize,
		Bet:       p.Bet,
		Raise:     copyInt(p.Raise),
		Folded:    p.Folded,
		ShowCards: p.ShowCards,
		Left:      p.Left,
	}

	if canSeeHoleCards && p.HoleCards != nil {
		view.HoleCards = deck.NewCardViews(p.HoleCards[:])
	}

	if isSelf {
		var actions []Action
		if p.table != nil {
			actions = p.table.ActionsForPlayer(p.ID)
		}

		if actions == nil {
			actions = []Action{}
		}

		view.LegalActions = &actions
	}

	return view
}

func newPlayerViews(viewerID string, players []*Player) []*PlayerView {
	if players == nil {
		return nil
	}

	views := make([]*PlayerView, len(players))
	for i, p := range players {
		if p != nil {
			views[i] = NewPlayerView(viewerID, p)
		}
	}

	return views
}

// NewPotView projects the pot for the viewer
func NewPotView(viewerID string, p *Pot) *PotView {
	eligible := newPlayerViews(viewerID, p.EligiblePlayers)
	if eligible == nil {
		eligible = []*PlayerView{}
	}

	return &PotView{
		Amount:          p.Amount,
		EligiblePlayers: eligible,
		Winners:         newPlayerViews(viewerID, p.Winners),
	}
}

// NewTableView projects the table for the viewer
// The result shares no memory with the table and is safe to compute concurrently
func NewTableView(viewerID string, t *Table) *TableView {
	seats := newPlayerViews(viewerID, t.Seats)
	if seats == nil {
		seats = []*PlayerView{}
	}

	pots := make([]*PotView, len(t.Pots))
	for i, pot := range t.Pots {
		pots[i] = NewPotView(viewerID, pot)
	}

	return &TableView{
		BuyIn:              t.BuyIn,
		SmallBlind:         t.SmallBlind,
		BigBlind:           t.BigBlind,
		BigBlindPosition:   copyInt(t.BigBlindPosition),
		SmallBlindPosition: copyInt(t.SmallBlindPosition),
		DealerPosition:     copyInt(t.DealerPosition),
		CurrentPosition:    copyInt(t.CurrentPosition),
		CurrentBet:         copyInt(t.CurrentBet),
		CurrentRound:       copyRound(t.CurrentRound),
		HandNumber:         t.HandNumber,
		CommunityCards:     deck.NewCardViews(t.CommunityCards),
		Seats:              seats,
		Pots:               pots,
		Winners:            newPlayerViews(viewerID, t.Winners),
	}
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}

	cp := *i
	return &cp
}

func copyRound(r *Round) *Round {
	if r == nil {
		return nil
	}

	cp := *r
	return &cp
}
