package auth

// Profile represents the normalized identity attributes fetched from an
// OAuth provider after a successful login. It contains facts only, no
// decisions; eligibility and account linking happen downstream.
type Profile struct {
	Provider   string // e.g. "ucl"
	Email      string // unique identifying key for account reconciliation
	FullName   string // display name
	Department string
	UPI        string // institutional identifier
	IsStudent  bool
	TokenScope string // scope granted with the access token
}

// Normalize fills absent attributes with the placeholder defaults the
// mobile app expects. Email is deliberately left empty when missing so
// callers can reject the profile.
func (p *Profile) Normalize() {
	if p.FullName == "" {
		p.FullName = "UCL Student"
	}
	if p.Department == "" {
		p.Department = "Unknown"
	}
	if p.UPI == "" {
		p.UPI = "unknown"
	}
	if p.TokenScope == "" {
		p.TokenScope = "unknown"
	}
}
