package holdem

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"pokertable-server/pkg/deck"
	"pokertable-server/pkg/snapshot"
)

func allPlayerViews(v *TableView) []*PlayerView {
	views := make([]*PlayerView, 0)
	for _, p := range v.Seats {
		if p != nil {
			views = append(views, p)
		}
	}

	for _, pot := range v.Pots {
		views = append(views, pot.EligiblePlayers...)
		views = append(views, pot.Winners...)
	}

	return append(views, v.Winners...)
}

func TestNewTableView_holeCards(t *testing.T) {
	a := assert.New(t)
	tbl := flopTable()

	asA := NewTableView("A", tbl)
	a.Equal(deck.CardsFromString("4s,5s"), asA.Seats[0].HoleCards)
	a.Nil(asA.Seats[1].HoleCards)
	a.Equal(40, asA.Pots[0].Amount)

	asB := NewTableView("B", tbl)
	a.Nil(asB.Seats[0].HoleCards)
	a.Equal(deck.CardsFromString("13h,13d"), asB.Seats[1].HoleCards)

	spectator := NewTableView("Z", tbl)
	for _, p := range allPlayerViews(spectator) {
		a.Nil(p.HoleCards, "spectator must not see %s's cards", p.ID)
		a.Nil(p.LegalActions)
	}

	// pots reveal the same as seats
	a.Equal(deck.CardsFromString("4s,5s"), asA.Pots[0].EligiblePlayers[0].HoleCards)
	a.Nil(asA.Pots[0].EligiblePlayers[1].HoleCards)

	// the table itself is untouched
	a.Equal(holeCards("13h,13d"), tbl.Seats[1].HoleCards)
}

func TestNewTableView_showCards(t *testing.T) {
	a := assert.New(t)
	tbl := showdownTable()

	for _, viewer := range []string{"A", "B", "C", "D", "Z"} {
		v := NewTableView(viewer, tbl)
		for _, p := range allPlayerViews(v) {
			switch p.ID {
			case "A":
				a.Equal(deck.CardsFromString("14s,14h"), p.HoleCards, "viewer %s", viewer)
			case "C":
				a.Equal(deck.CardsFromString("10s,10h"), p.HoleCards, "viewer %s", viewer)
			default:
				// B folded, D left without cards
				a.Nil(p.HoleCards, "viewer %s, player %s", viewer, p.ID)
			}
		}
	}
}

func TestNewTableView_legalActions(t *testing.T) {
	a := assert.New(t)
	tbl := flopTable()

	asB := NewTableView("B", tbl)
	expected := []Action{ActionCheck, ActionBet, ActionFold}
	for _, p := range allPlayerViews(asB) {
		if p.ID == "B" {
			if a.NotNil(p.LegalActions) {
				a.Equal(expected, *p.LegalActions)
			}
		} else {
			a.Nil(p.LegalActions, "player %s", p.ID)
		}
	}

	// A is seated but it is not their turn
	asA := NewTableView("A", tbl)
	if a.NotNil(asA.Seats[0].LegalActions) {
		a.Equal([]Action{}, *asA.Seats[0].LegalActions)
	}
	a.Nil(asA.Seats[1].LegalActions)

	// after the hand the dealer may deal
	asC := NewTableView("C", showdownTable())
	a.Equal([]Action{ActionDeal}, *asC.Seats[2].LegalActions)
	a.Nil(asC.Seats[0].LegalActions)
	a.Equal([]Action{ActionDeal}, *asC.Winners[0].LegalActions)
	a.Nil(asC.Winners[1].LegalActions)
}

func TestNewTableView_winnersAreEligible(t *testing.T) {
	for _, viewer := range []string{"A", "C", "Z"} {
		v := NewTableView(viewer, showdownTable())
		for i, pot := range v.Pots {
			for _, w := range pot.Winners {
				found := false
				for _, e := range pot.EligiblePlayers {
					if e.ID == w.ID {
						found = true
						assert.Equal(t, e, w, "pot %d: winner %s must match the eligible view", i, w.ID)
					}
				}

				assert.True(t, found, "pot %d: winner %s is not eligible", i, w.ID)
			}
		}
	}
}

func TestNewTableView_json(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(NewTableView("B", flopTable()))
	a.NoError(err)

	obj := decode(string(b)).(map[string]interface{})
	a.NotContains(obj, "deck")
	a.NotContains(obj, "lastRaise")
	a.NotContains(obj, "winners")
	a.Equal("flop", obj["currentRound"])
	a.Equal(float64(0), obj["currentBet"])

	seats := obj["seats"].([]interface{})
	a.Equal(MaxSeats, len(seats))
	a.Nil(seats[2])

	self := seats[1].(map[string]interface{})
	a.Equal([]interface{}{
		map[string]interface{}{"id": "check", "name": "Check"},
		map[string]interface{}{"id": "bet", "name": "Bet"},
		map[string]interface{}{"id": "fold", "name": "Fold"},
	}, self["legalActions"])

	other := seats[0].(map[string]interface{})
	a.NotContains(other, "legalActions")
	a.NotContains(other, "holeCards")

	// self with no actions still gets an empty list
	b, err = json.Marshal(NewTableView("A", flopTable()))
	a.NoError(err)
	obj = decode(string(b)).(map[string]interface{})
	a.Equal([]interface{}{}, obj["seats"].([]interface{})[0].(map[string]interface{})["legalActions"])

	b, err = json.Marshal(NewTableView("A", showdownTable()))
	a.NoError(err)
	obj = decode(string(b)).(map[string]interface{})
	a.NotContains(obj, "lastRaise")
	a.NotContains(obj, "currentRound")
	a.Len(obj["winners"], 2)
}

func TestNewTableView_snapshot(t *testing.T) {
	snapshot.ValidateSnapshot(t, NewTableView("A", showdownTable()))
	snapshot.ValidateSnapshot(t, NewTableView("B", flopTable()))
}

func TestNewTableView_sharesNoMemory(t *testing.T) {
	a := assert.New(t)
	tbl := flopTable()
	v := NewTableView("A", tbl)

	*v.CurrentBet = 100
	*v.DealerPosition = 1
	v.CommunityCards[0] = deck.CardFromString("3h")
	v.Seats[0].HoleCards[0] = deck.CardFromString("3h")

	a.Equal(intPtr(0), tbl.CurrentBet)
	a.Equal(intPtr(0), tbl.DealerPosition)
	a.Equal(deck.CardFromString("2c"), tbl.CommunityCards[0])
	a.Equal(deck.CardFromString("4s"), tbl.Seats[0].HoleCards[0])
}

func TestNewTableView_concurrent(t *testing.T) {
	tbl := showdownTable()
	viewers := []string{"A", "B", "C", "D", "Z"}

	expected := make(map[string]*TableView, len(viewers))
	for _, viewer := range viewers {
		expected[viewer] = NewTableView(viewer, tbl)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for _, viewer := range viewers {
			wg.Add(1)
			go func(viewer string) {
				defer wg.Done()
				assert.Equal(t, expected[viewer], NewTableView(viewer, tbl))
			}(viewer)
		}
	}

	wg.Wait()
}

// TestViews_coverEveryField fails when a field is added to the model without deciding
// whether viewers may see it
func TestViews_coverEveryField(t *testing.T) {
	runTest := func(model interface{}, view interface{}, hidden ...string) {
		t.Helper()

		viewFields := make(map[string]bool)
		vt := reflect.TypeOf(view)
		for i := 0; i < vt.NumField(); i++ {
			viewFields[vt.Field(i).Name] = true
		}

		hiddenFields := make(map[string]bool)
		for _, name := range hidden {
			hiddenFields[name] = true
		}

		mt := reflect.TypeOf(model)
		for i := 0; i < mt.NumField(); i++ {
			field := mt.Field(i)
			if !field.IsExported() {
				continue
			}

			visible := viewFields[field.Name]
			assert.True(t, visible != hiddenFields[field.Name], "%s.%s must be either viewed or hidden", mt.Name(), field.Name)
		}
	}

	runTest(Table{}, TableView{}, "Deck", "LastRaise")
	runTest(Player{}, PlayerView{})
	runTest(Pot{}, PotView{})
}
