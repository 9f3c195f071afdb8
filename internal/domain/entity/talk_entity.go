package entity

import "time"

// Talk is a conference session. Only the fields needed to list a speaker's
// sessions on their profile page are modeled here.
type Talk struct {
	ID            string
	Title         string
	Summary       string
	Language      Language
	Room          string
	Start         time.Time
	End           time.Time
	SpeakerLogins []string
}
