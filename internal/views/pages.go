package views

import (
	"traveling_help/internal/api"
	"traveling_help/internal/forms"
)

// Notice is a transient notification shown once at the top of a page.
type Notice struct {
	Status      string // "success" or "error"
	Title       string
	Description string
}

// Success builds a success notice.
func Success(title, description string) *Notice {
	return &Notice{Status: "success", Title: title, Description: description}
}

// Failure builds an error notice.
func Failure(title, description string) *Notice {
	return &Notice{Status: "error", Title: title, Description: description}
}

// Base is embedded by every page.
type Base struct {
	Title  string
	Notice *Notice
	// Driver is the cached profile when a session is present; display only.
	Driver *api.Driver
}

// HomePage is the marketing entry point.
type HomePage struct {
	Base
}

// Auth modes.
const (
	ModeLogin    = "login"
	ModeRegister = "register"
)

// AuthPage shows either the login or the registration form.
type AuthPage struct {
	Base
	Mode     string
	Login    forms.Login
	Register forms.Registration
	Errors   forms.Errors
}

// Dashboard tabs and dialogs.
const (
	TabPosts = "posts"
	TabStats = "stats"

	ModalCreate = "create"
	ModalEdit   = "edit"
)

// DashboardPage is the driver's own list of posts.
type DashboardPage struct {
	Base
	Profile api.Driver
	Tab     string
	Posts   []api.Post
	// LoadMessage is set when the list could not be fetched.
	LoadMessage string
	Stats       Stats

	Modal  string
	EditID string
	Form   forms.RidePost
	Errors forms.Errors

	// DeleteTarget is the post awaiting delete confirmation.
	DeleteTarget *api.Post
}

// RidesPage is the listing shell; results arrive as a fragment.
type RidesPage struct {
	Base
	From       string
	To         string
	Page       int
	ResultsURL string
	Skeletons  []int
}

// RidesResults is the fragment holding one page of rides.
type RidesResults struct {
	Phase   Phase
	Message string
	Posts   []api.Post
	Pager   Pager
	From    string
	To      string
}

// Failed reports whether the rides could not be fetched.
func (r RidesResults) Failed() bool { return r.Phase == Failed }
