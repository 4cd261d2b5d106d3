// Package payments provides the transaction engine of a small payments
// processor. It folds an ordered log of client transactions into a
// snapshot of client accounts.
//
// The log holds five kinds of records:
//   - deposit: credits a client account, and can later be disputed.
//   - withdrawal: debits a client account if the available funds are
//     sufficient.
//   - dispute: holds the funds of a previous deposit while a claim is
//     investigated.
//   - resolve: releases held funds back to the client.
//   - chargeback: reverses a disputed deposit for good, and locks the
//     client account.
//
// Deposits and withdrawals are retained in a [Ledger] indexed by
// transaction id, so that disputes can reference them. Balances are kept in
// [Accounts], where every account satisfies Total == Available + Held.
//
// Anomalies in the log (unknown transactions, duplicate ids, impossible
// dispute transitions, insufficient funds, locked accounts) are not errors:
// the record is silently ignored. The only error a well formed record can
// produce is [ErrMissingAmount].
//
// This package serves as the foundational logic for the `pay` command-line
// tool.
package payments
