package domain

import "time"

// SubmissionChannel enumerates where a ticket was submitted from.
type SubmissionChannel string

const (
	ChannelWeb        SubmissionChannel = "WEB"
	ChannelMobile     SubmissionChannel = "MOBILE"
	ChannelCallCenter SubmissionChannel = "CALL_CENTER"
	ChannelWalkIn     SubmissionChannel = "WALK_IN"
)

// RawTicket is the immutable free-text input to the triage pipeline.
// It is created by the caller and consumed exactly once.
type RawTicket struct {
	Body        string
	Channel     SubmissionChannel
	SubmittedAt time.Time
}
