package domain

// Audience identifies one of the output briefings.
type Audience string

// Audience constants.
const (
	AudienceExecutive  Audience = "executive"
	AudienceConsulting Audience = "consulting"
	AudienceSocial     Audience = "social"
)

// Audiences returns every audience in assembly order.
func Audiences() []Audience {
	return []Audience{AudienceExecutive, AudienceConsulting, AudienceSocial}
}

// AllowsSocialHosts reports whether the audience may cite discussion, forum
// and code-hosting sites. Only the consulting briefing does.
func (a Audience) AllowsSocialHosts() bool {
	return a == AudienceConsulting
}

// Valid reports whether a is a known audience.
func (a Audience) Valid() bool {
	switch a {
	case AudienceExecutive, AudienceConsulting, AudienceSocial:
		return true
	default:
		return false
	}
}

func (a Audience) String() string {
	return string(a)
}
