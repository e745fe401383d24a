// Package models defines the core domain records for divvy.
//
// # Models
//
//   - User: a person who can pay for and share expenses
//   - Group: a named, fixed set of members that scopes shared expenses
//   - Expense: a cost split among participants, or a settlement payment
//   - AuditEntry: one immutable entry in an expense's edit history
//   - SimplifiedDebt: a derived transfer from one user to another
//   - ExpenseDraft: the resolved input for creating or replacing an expense
//
// # Design Principles
//
// 1. **Passive records**: models carry data and invariant documentation, no behavior
// 2. **Snapshots**: the calculation packages receive these by value and never mutate them
// 3. **Avoid circular references**: expenses reference their group by ID string
// 4. **Derived values are not stored**: SimplifiedDebt is recomputed, never persisted
package models
