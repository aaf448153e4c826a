package domain

// OTP purposes. A purpose scopes both the cached code and the proof token
// minted after a successful verification, so a token proving control of an
// email for registration cannot be replayed against a password reset.
const (
	PurposeRegister = "register"
	PurposeReset    = "reset"
)

// ValidPurpose reports whether purpose names a supported OTP flow.
func ValidPurpose(purpose string) bool {
	return purpose == PurposeRegister || purpose == PurposeReset
}
