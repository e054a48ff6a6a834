package profile

import (
	"github.com/janisto/huma-feed/internal/platform/timeutil"
)

// Profile represents a user profile response.
type Profile struct {
	ID        string        `json:"id"        doc:"Profile identifier"                 example:"5f0c6f7e-2b1d-4c8e-9a3f-1d2e3f4a5b6c"`
	UserID    string        `json:"userId"    doc:"User ID the profile belongs to"     example:"user-123"`
	FullName  string        `json:"fullName"  doc:"Display name"                       example:"Ada Lovelace"`
	Email     string        `json:"email"     doc:"Email address"                      example:"ada@example.com"`
	Bio       *string       `json:"bio"       doc:"Free-form biography" nullable:"true" example:"Analytical engine enthusiast"`
	PostCount *int          `json:"postCount" doc:"Number of posts in the user's feed; null when it could not be counted" nullable:"true" example:"3"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"                 example:"2024-01-15T10:30:00.000000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt" doc:"Last update timestamp"              example:"2024-01-15T10:30:00.000000Z"`
}
