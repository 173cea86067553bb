package branches

import "time"

// HeadOfficeName is the branch created at first startup.
const HeadOfficeName = "Head Office"

// Branch is a physical school location with its own branding.
type Branch struct {
	ID             int64
	Name           string
	Address        string
	Phone          string
	Email          string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
