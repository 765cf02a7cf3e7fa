package holdem

import (
	"fmt"
	"pokertable-server/pkg/codec"
)

// Roster maps player IDs to the single *Player built for each seat
// It is populated while seats are deserialized and used to resolve every other reference
type Roster map[string]*Player

// Add registers the player, rejecting duplicate IDs
func (r Roster) Add(p *Player) error {
	if _, ok := r[p.ID]; ok {
		return codec.Errorf("duplicate player %q", p.ID)
	}

	r[p.ID] = p
	return nil
}

// Resolve accepts a reference stub {id} and returns the already-built player
func (r Roster) Resolve(v interface{}) (*Player, error) {
	obj, err := codec.AsObject(v)
	if err != nil {
		return nil, err
	}

	id, err := codec.Field(obj, "id", codec.NonEmptyString)
	if err != nil {
		return nil, err
	}

	p, ok := r[id]
	if !ok {
		return nil, &codec.DeserializationError{Err: &codec.ReferenceResolutionError{ID: id}}
	}

	return p, nil
}

// SerializeReference returns the reference stub for the player
func SerializeReference(p *Player) (codec.Object, error) {
	if p == nil {
		return nil, &codec.SerializationError{Err: fmt.Errorf("cannot reference a nil player")}
	}

	return codec.Object{"id": p.ID}, nil
}

func serializeReferences(players []*Player) ([]interface{}, error) {
	out := make([]interface{}, len(players))
	for i, p := range players {
		ref, err := SerializeReference(p)
		if err != nil {
			return nil, err
		}

		out[i] = ref
	}

	return out, nil
}
