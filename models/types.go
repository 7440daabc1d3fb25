package models

import "time"

// Poll status constants
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// URL kinds accepted by pollutil.FormatPollURL
const (
	URLVote    = "vote"
	URLView    = "view"
	URLResults = "results"
)

// Validation limits
const (
	MaxTitleLength = 200
	MinOptions     = 2
)

// Request types

type CreatePollRequest struct {
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Options            []string   `json:"options"`
	AllowMultipleVotes bool       `json:"allowMultipleVotes"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	IsPublic           *bool      `json:"isPublic,omitempty"` // defaults to true
}

type UpdatePollRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type VoteRequest struct {
	OptionID string `json:"optionId"`
}

// Response types

type PollResponse struct {
	Poll PollWithOptions `json:"poll"`
}

type ListPollsResponse struct {
	Polls []PollWithOptions `json:"polls"`
}

// VoteResponse is the option after the vote was counted
type VoteResponse struct {
	Option PollOption `json:"option"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ResultsResponse struct {
	Poll            PollWithOptions `json:"poll"`
	Results         []OptionResult  `json:"results"`
	Analytics       PollAnalytics   `json:"analytics"`
	Status          string          `json:"status"`
	TimeUntilExpiry *string         `json:"time_until_expiry"`
	ShareText       string          `json:"share_text"`
	URLs            PollURLs        `json:"urls"`
}

type PollURLs struct {
	Vote    string `json:"vote"`
	View    string `json:"view"`
	Results string `json:"results"`
}

// Domain types

type User struct {
	ID string `json:"id"`
}

type Poll struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	CreatorID          string     `json:"creator_id"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	IsPublic           bool       `json:"is_public"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type PollOption struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Text      string    `json:"text"`
	Position  int       `json:"position"`
	VoteCount int       `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PollWithOptions is a poll snapshot merged with its options. The embedded
// Poll flattens into the same JSON object.
type PollWithOptions struct {
	Poll
	Options []PollOption `json:"options"`
}

// Derived views, never persisted

type OptionResult struct {
	PollOption
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PopularOption struct {
	Text       string  `json:"text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type PollAnalytics struct {
	TotalVotes            int            `json:"total_votes"`
	TotalOptions          int            `json:"total_options"`
	MostPopular           *PopularOption `json:"most_popular"`
	AverageVotesPerOption float64        `json:"average_votes_per_option"`
}

// Error response

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Issues  []FieldError `json:"issues,omitempty"`
}
