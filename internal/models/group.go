package models

// Group represents a named set of users that scopes shared expenses.
//
// Membership is fixed after creation and always includes the creating user,
// so a group has at least one member. Member order is preserved: the debt
// simplifier partitions debtors and creditors in this order.
type Group struct {
	// ID is the unique identifier for the group (e.g. "group-1718123456789-a1b2c3d4").
	ID string `json:"id"`

	// Name is the display name of the group (e.g. "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Members is the ordered list of users in this group.
	Members []User `json:"members"`
}

// HasMember reports whether the user with the given ID belongs to the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
