package dto

// Toggle outcomes reported by cast vote. Callers pick the user-facing
// message from the action.
const (
	VoteActionCreated = "created"
	VoteActionUpdated = "updated"
	VoteActionRemoved = "removed"
)

// CastVoteDTO for casting a vote on a review
type CastVoteDTO struct {
	Type string `json:"type" binding:"required,oneof=UPVOTE DOWNVOTE"`
}

// VoteResultResponse reports which toggle branch was taken.
type VoteResultResponse struct {
	ReviewID string `json:"review_id"`
	Action   string `json:"action"`
	VoteType string `json:"vote_type"`
}

// VoteCountsResponse for returning a review's vote tally
type VoteCountsResponse struct {
	ReviewID  string `json:"review_id"`
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
	Total     int64  `json:"total"`
	Score     int64  `json:"score"`
}

// VoterChoiceResponse for rendering the requester's own vote state
type VoterChoiceResponse struct {
	ReviewID string  `json:"review_id"`
	HasVoted bool    `json:"has_voted"`
	VoteType *string `json:"vote_type"`
}
