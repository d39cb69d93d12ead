package account

// Profile identifies one browser profile. Email is set once the shopper has
// logged in.
type Profile struct {
	ID    string
	Email string
}
