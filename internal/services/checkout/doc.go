// Package checkout turns a buyer's cart into a persisted order with a
// complete payout ledger.
//
// Submission is the moment rates are frozen: every order item carries
// the affiliate, platform, and fundraiser percentages in force at
// purchase plus a snapshot of the per-unit breakdown, and the payout
// rows are derived from those frozen numbers, never from the live fee
// configuration. The order, its items, and its ledger are written in
// one database transaction.
package checkout
