package protocol

// Auth identifies how the client authenticates with the server. It is
// immutable once constructed and is copied into every outbound frame at
// encode time. The token is opaque and never inspected locally.
type Auth struct {
	provider string
	token    string
}

// GoogleAuth builds an authentication descriptor for the "google" provider,
// currently the only provider the server understands.
func GoogleAuth(token string) Auth {
	return Auth{provider: "google", token: token}
}

func (a Auth) Provider() string {
	return a.provider
}

func (a Auth) Token() string {
	return a.token
}
