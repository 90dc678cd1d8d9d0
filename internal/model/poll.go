package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Poll option bounds
const (
	MinPollOptions = 2
	MaxPollOptions = 5
)

// Poll belongs to exactly one event and carries 2..5 options
type Poll struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"` // hours the poll stays open
	CreatedBy string    `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}

// PollOption is one votable choice of a poll
type PollOption struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Text   string `json:"text"`
	Votes  int    `json:"votes"`
}

// Ballot records a user's single vote on a poll
type Ballot struct {
	ID       string    `json:"id"`
	PollID   string    `json:"poll_id"`
	OptionID string    `json:"option_id"`
	UserID   string    `json:"user_id"`
	CastOn   time.Time `json:"cast_on"`
}

// PollWithOptions is a poll together with its options and vote counts
type PollWithOptions struct {
	Poll    Poll         `json:"poll"`
	Options []PollOption `json:"options"`
}

// CreatePollRequest carries the raw fields for creating a poll.
type CreatePollRequest struct {
	Title    string   `json:"title"`
	Options  []string `json:"options"`
	Duration string   `json:"duration"`
}

// ValidatedPollInput is the fully validated composite of a poll request.
type ValidatedPollInput struct {
	Title    string
	Options  []string
	Duration int
}

// Validate runs every field validator and collects all failures. Option
// counts outside [2,5] are rejected.
func (r *CreatePollRequest) Validate() (*ValidatedPollInput, []FieldError) {
	var errs []FieldError
	input := &ValidatedPollInput{}

	title, fe := ValidateTitle(r.Title)
	if fe != nil {
		errs = append(errs, *fe)
	}
	input.Title = title

	if len(r.Options) < MinPollOptions || len(r.Options) > MaxPollOptions {
		errs = append(errs, FieldError{
			Field:   "options",
			Message: fmt.Sprintf("number of options must be between %d and %d", MinPollOptions, MaxPollOptions),
		})
	} else {
		for i, opt := range r.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, FieldError{
					Field:   "options",
					Message: fmt.Sprintf("option %d is blank", i+1),
				})
			}
		}
		input.Options = r.Options
	}

	duration, err := strconv.Atoi(strings.TrimSpace(r.Duration))
	if err != nil || duration <= 0 {
		errs = append(errs, FieldError{
			Field:   "duration",
			Message: fmt.Sprintf("invalid duration %q, must be a positive number of hours", r.Duration),
		})
	} else {
		input.Duration = duration
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

// VoteRequest carries the chosen option for a poll vote.
type VoteRequest struct {
	OptionID string `json:"option_id"`
}
