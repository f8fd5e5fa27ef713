// Package transaction contains the Transaction ledger aggregate.
//
// A transaction records a money movement against a user's balance. Deposits
// are the only type with a full lifecycle: a client requests one with a
// payment proof, and an admin approves (crediting the balance) or rejects it.
// The Type and Status enums are value objects with validated transitions.
package transaction
