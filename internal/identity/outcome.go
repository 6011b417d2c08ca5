package identity

// OutcomeKind is the closed set of results the provider adapter can produce.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeInvalidCredentials
	OutcomeUserNotConfirmed
	OutcomeUserAlreadyExists
	OutcomeUnknownError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "Success"
	case OutcomeInvalidCredentials:
		return "InvalidCredentials"
	case OutcomeUserNotConfirmed:
		return "UserNotConfirmed"
	case OutcomeUserAlreadyExists:
		return "UserAlreadyExists"
	default:
		return "UnknownError"
	}
}

// Credentials are the caller-supplied login or sign-up fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens are issued by the provider on a completed authentication.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int32  `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Outcome is the classified provider result. Tokens is set only for a
// successful authentication, Detail only for OutcomeUnknownError.
type Outcome struct {
	Kind          OutcomeKind
	Tokens        *Tokens
	UserConfirmed bool
	Detail        string
}

func Unknown(detail string) Outcome {
	return Outcome{Kind: OutcomeUnknownError, Detail: detail}
}
