package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		FullName string `json:"fullName" required:"true" doc:"Display name; 1 to 100 characters after trimming" example:"Ada Lovelace"`
	}
}

// ProfileGetInput for GET /profile (no parameters)
type ProfileGetInput struct{}

// UserProfileGetInput for GET /users/{userId}/profile
type UserProfileGetInput struct {
	UserID string `path:"userId" minLength:"1" maxLength:"128" doc:"User ID" example:"user-123"`
}

// ProfileUpdateInput for PATCH /profile. Both fields are written; an absent,
// null or blank bio clears it.
type ProfileUpdateInput struct {
	Body struct {
		FullName string  `json:"fullName"      required:"true" doc:"Display name; 1 to 100 characters after trimming" example:"Ada Lovelace"`
		Bio      *string `json:"bio,omitempty" nullable:"true" doc:"Biography"                                         example:"Analytical engine enthusiast"`
	}
}
