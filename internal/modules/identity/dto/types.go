package dto

type CredentialsInput struct {
	Email    string
	Password string
}

type IdentityOutput struct {
	SignedIn bool
	UserID   string
	Email    string
	// ProgressLoaded is true when stored progress replaced the guest state.
	ProgressLoaded bool
}
