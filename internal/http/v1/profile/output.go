package profile

// ProfileCreateOutput for POST /profile (201 Created)
type ProfileCreateOutput struct {
	Location string `header:"Location" doc:"URL of the created profile"`
	Body     Profile
}

// ProfileOutput for GET and PATCH
type ProfileOutput struct {
	Body Profile
}
