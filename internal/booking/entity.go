package booking

import "time"

// Candidate holds the fields a caller submits for a new booking. Values are
// untrusted until Validate accepts them.
type Candidate struct {
	Room        string `json:"room"        validate:"required"`
	Date        string `json:"date"        validate:"required"`
	StartTime   string `json:"startTime"   validate:"required"`
	EndTime     string `json:"endTime"     validate:"required"`
	Pic         string `json:"pic"         validate:"required"`
	MeetingName string `json:"meetingName" validate:"required"`
}

type Booking struct {
	ID          string    `json:"id"`
	Room        string    `json:"room"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Pic         string    `json:"pic"`
	MeetingName string    `json:"meetingName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
