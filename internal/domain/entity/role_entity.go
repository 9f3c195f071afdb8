package entity

// Role is an authorization role carried on the user. It is never editable
// through the profile form.
type Role string

const (
	RoleStaff        Role = "STAFF"
	RoleStaffInPause Role = "STAFF_IN_PAUSE"
	RoleUser         Role = "USER"
	RoleVolunteer    Role = "VOLUNTEER"
)

// Language identifies a profile description language. Every persisted user
// carries exactly one description per language.
type Language string

const (
	French  Language = "FRENCH"
	English Language = "ENGLISH"
)

// Languages lists all supported description languages.
var Languages = []Language{French, English}
