package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"pokertable-server/internal/rng"
	"pokertable-server/internal/util"
	"pokertable-server/pkg/deck"
	"pokertable-server/pkg/holdem"
)

// maxRoomNameLength is the longest name a room can have
const maxRoomNameLength = 64

// ErrInvalidRoomName is returned when a room name is too long
var ErrInvalidRoomName = UserError("room name must be 64 characters or fewer")

// ErrPlayerIDRequired is returned when an anonymous viewer tries to change a room
var ErrPlayerIDRequired = UserError("a player ID is required")

// Stakes are the monetary settings of a new table
type Stakes struct {
	BuyIn      int `json:"buyIn"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
}

// Validate returns a UserError if the stakes cannot be used for a table
func (s Stakes) Validate() error {
	if s.BuyIn <= 0 || s.SmallBlind <= 0 || s.BigBlind <= 0 {
		return UserError("buy-in and blinds must be greater than zero")
	}

	if s.SmallBlind > s.BigBlind {
		return UserError("small blind cannot be greater than the big blind")
	}

	if s.BigBlind > s.BuyIn {
		return UserError("big blind cannot be greater than the buy-in")
	}

	return nil
}

// Room is a persisted poker table
// Table is only ever read from and written to storage as a whole
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatorID string `json:"creatorId"`
	// PlayerIDs are the seated players, derived from the table every time the room is loaded or saved
	PlayerIDs []string      `json:"playerIds"`
	Table     *holdem.Table `json:"-"`
	Version   int           `json:"version"`
	Created   time.Time     `json:"created"`
	Updated   time.Time     `json:"updated"`
}

// NewRoom returns an unsaved room with a freshly shuffled deck
// The creator is seated at the table. A blank name is replaced with a random one
func NewRoom(name, creatorID string, stakes Stakes, gen rng.Generator) (*Room, error) {
	if creatorID == "" {
		return nil, ErrPlayerIDRequired
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	if len(name) > maxRoomNameLength {
		return nil, ErrInvalidRoomName
	}

	if err := stakes.Validate(); err != nil {
		return nil, err
	}

	t := holdem.NewTable(stakes.BuyIn, stakes.SmallBlind, stakes.BigBlind)
	t.Deck = deck.New()
	t.Deck.Shuffle(gen)

	if _, err := t.Sit(creatorID); err != nil {
		return nil, err
	}

	return &Room{
		ID:        uuid.New().String(),
		Name:      name,
		CreatorID: creatorID,
		PlayerIDs: t.PlayerIDs(),
		Table:     t,
	}, nil
}

// beforeSave refreshes derived fields and encodes the table
func (r *Room) beforeSave() ([]byte, error) {
	r.PlayerIDs = r.Table.PlayerIDs()
	return encodeTable(r.Table)
}

// afterLoad decodes the table and refreshes derived fields
// On failure the room keeps no partial table
func (r *Room) afterLoad(serializedTable []byte) error {
	t, err := decodeTable(serializedTable)
	if err != nil {
		return &RoomUnavailableError{ID: r.ID, Err: err}
	}

	r.Table = t
	r.PlayerIDs = t.PlayerIDs()
	return nil
}

func encodeTable(t *holdem.Table) ([]byte, error) {
	obj, err := t.Serialize()
	if err != nil {
		return nil, err
	}

	return json.Marshal(obj)
}

func decodeTable(b []byte) (*holdem.Table, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}

	return holdem.DeserializeTable(v)
}

// RoomView is a room as seen by a single viewer
type RoomView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatorID string            `json:"creatorId"`
	CanSit    bool              `json:"canSit"`
	Table     *holdem.TableView `json:"table"`
}

// View projects the room for the viewer
// An empty viewerID is a spectator who cannot sit
func (r *Room) View(viewerID string) *RoomView {
	_, seated := r.Table.PlayerByID(viewerID)
	canSit := seated == nil && r.Table.HasEmptySeat()
	if seated != nil && seated.Left {
		canSit = true
	}

	return &RoomView{
		ID:        r.ID,
		Name:      r.Name,
		CreatorID: r.CreatorID,
		CanSit:    viewerID != "" && canSit,
		Table:     holdem.NewTableView(viewerID, r.Table),
	}
}
