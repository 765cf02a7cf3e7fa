package holdem

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// errors returned by table mutations
const (
	ErrNoAvailableSeats = UserError("no available seats")
	ErrAlreadySeated    = UserError("player is already seated")
	ErrNotSeated        = UserError("player is not seated")
	ErrOutOfTurn        = UserError("action invoked out of turn")
	ErrIllegalAction    = UserError("illegal action")
)
