package models

// User represents a person who participates in shared expenses.
//
// Identity is the ID; everything else is mutable profile data that only the
// owning user changes. Users are never deleted.
type User struct {
	// ID is the unique identifier for the user (e.g. "user-1718123456789-a1b2c3d4").
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// AvatarURL is an optional profile picture URL.
	AvatarURL string `json:"avatarUrl,omitempty"`

	// PaymentMessage is an optional note shown to people paying this user
	// (e.g. a Venmo handle). Bookkeeping only, no payment execution.
	PaymentMessage string `json:"paymentMessage,omitempty"`
}
