package holdem

import (
	"pokertable-server/pkg/codec"
)

// Serialize converts the pot into a JSON tree
// Players are written as reference stubs
func (p *Pot) Serialize() (codec.Object, error) {
	eligible, err := serializeReferences(p.EligiblePlayers)
	if err != nil {
		return nil, err
	}

	obj := codec.Object{
		"amount":          p.Amount,
		"eligiblePlayers": eligible,
	}

	if p.Winners != nil {
		winners, err := serializeReferences(p.Winners)
		if err != nil {
			return nil, err
		}

		obj["winners"] = winners
	}

	return obj, nil
}

// DeserializePot builds a pot, resolving every player against roster
func DeserializePot(v interface{}, roster Roster) (*Pot, error) {
	obj, err := codec.AsObject(v)
	if err != nil {
		return nil, err
	}

	amount, err := codec.Field(obj, "amount", codec.NonNegativeInt)
	if err != nil {
		return nil, err
	}

	eligible, err := codec.Field(obj, "eligiblePlayers", codec.Array(roster.Resolve))
	if err != nil {
		return nil, err
	}

	seen := make(map[*Player]bool, len(eligible))
	for i, p := range eligible {
		if seen[p] {
			return nil, codec.Annotate("eligiblePlayers", codec.Annotate(codec.Index(i), codec.Errorf("duplicate player %q", p.ID)))
		}

		seen[p] = true
	}

	winners, err := codec.Field(obj, "winners", codec.Optional(codec.Array(roster.Resolve)))
	if err != nil {
		return nil, err
	}

	pot := &Pot{
		Amount:          amount,
		EligiblePlayers: eligible,
	}

	if winners != nil {
		for i, p := range *winners {
			if !seen[p] {
				return nil, codec.Annotate("winners", codec.Annotate(codec.Index(i), codec.Errorf("player %q is not eligible for the pot", p.ID)))
			}
		}

		pot.Winners = *winners
	}

	return pot, nil
}
