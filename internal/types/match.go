package types

import (
	"time"

	"github.com/google/uuid"
)

// Match pairs a candidate profile with a request, awaiting downstream review.
type Match struct {
	ID               uuid.UUID   `json:"id"`
	ProfileID        uuid.UUID   `json:"profile_id"`
	RequestID        uuid.UUID   `json:"request_id"`
	Profile          *Profile    `json:"profile,omitempty"`
	Request          *Request    `json:"request,omitempty"`
	MatchStatus      CodeEntity  `json:"match_status"`
	MatchFeedback    *CodeEntity `json:"match_feedback,omitempty"`
	ProfileComment   *string     `json:"profile_comment,omitempty"`
	HRAdvisorComment *string     `json:"hr_advisor_comment,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// FindMatchesRequest is the input of a matching run received over HTTP or the CLI.
type FindMatchesRequest struct {
	RequestID uuid.UUID `json:"request_id" validate:"required"`
	Max       int       `json:"max" validate:"required,gt=0"`
}

// Validate validates the FindMatchesRequest using the validator.
func (r *FindMatchesRequest) Validate() error {
	return validate.Struct(r)
}
