// Package models defines the data types exchanged between the form views,
// the auth flow, the API gateway, and the session store.
package models

// Credentials is the login form input. It is never persisted; views wipe it
// once a submission settles.
type Credentials struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegistrationInput is the registration form input. ConfirmPassword is
// checked locally and never sent over the wire.
type RegistrationInput struct {
	UserID          string `json:"userId" validate:"required"`
	UserName        string `json:"userName" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// SessionUser is the single authenticated-user record owned by the session
// store. LoginCheck is true for every stored instance; the store refuses
// anything else.
type SessionUser struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	LoginCheck bool   `json:"loginCheck"`
}

// ResponseInfo is the status half of the API envelope. A Code with lexical
// prefix "2" means success regardless of the HTTP status the transport saw.
type ResponseInfo struct {
	Code    string `json:"code" validate:"required"`
	Message string `json:"message"`
}

// UserData is the payload half of the API envelope.
type UserData struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	LoginCheck bool   `json:"loginCheck"`
	Message    string `json:"message"`
}

// APIEnvelope is the wire shape of every backend response. Fields must not
// be trusted until the envelope has passed shape validation at the gateway.
// Shape validation requires a non-empty ResponseInfo.Code; payload fields may
// legitimately be zero (a rejected login carries no user data).
type APIEnvelope struct {
	ResponseInfo ResponseInfo `json:"responseInfo"`
	Data         UserData     `json:"data"`
}

// Success reports whether the business status code marks the response as
// successful.
func (e *APIEnvelope) Success() bool {
	return len(e.ResponseInfo.Code) > 0 && e.ResponseInfo.Code[0] == '2'
}

// User extracts the session user carried by a successful response.
func (e *APIEnvelope) User() *SessionUser {
	return &SessionUser{
		UserID:     e.Data.UserID,
		UserName:   e.Data.UserName,
		LoginCheck: e.Data.LoginCheck,
	}
}
