// Package models defines the core domain models for the expense ledger.
//
// # Entities
//
//   - Participant: a person who can be grouped and owe shares (unique by name)
//   - Group: a named set of participants (unique by name)
//   - Expense: a recorded amount with a store-assigned ID
//   - ExpenseShare: one participant's portion of one expense, paid or unpaid
//   - Report: paid/unpaid aggregation of the shares of a group's members
//
// # Relationships
//
// Groups reference their members by participant name. Shares reference both
// the expense and the participant by ID, mirroring the relational schema.
// IDs are assigned by the store; the models never generate them.
//
// # Money
//
// Amounts are decimal.Decimal values with two fractional digits. Stores
// persist them as integer cents (see ToCents and FromCents) so that sums are
// exact on every backend.
package models
