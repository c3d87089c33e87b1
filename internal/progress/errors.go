package progress

// Rejection is a caller-visible validation failure with a machine-readable
// reason code. Handlers map these to 4xx responses; anything else that
// bubbles out of the engine is a persistence failure.
type Rejection struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r *Rejection) Error() string {
	return r.Message
}

var (
	ErrNoGoals             = &Rejection{Code: "no_goals", Message: "at least one goal label is required"}
	ErrTooManyGoals        = &Rejection{Code: "too_many_goals", Message: "at most 5 goals can be defined per submission"}
	ErrGoalsAlreadyDefined = &Rejection{Code: "goals_already_defined", Message: "goals were already defined for the current week"}
	ErrGoalNotFound        = &Rejection{Code: "goal_not_found", Message: "goal not found or not active"}
	ErrMemberNotFound      = &Rejection{Code: "member_not_found", Message: "user is not a member of this room"}
	ErrRoomNotFound        = &Rejection{Code: "room_not_found", Message: "room not found"}
)
