// Package subscription manages the trial and subscription lifecycle: a user
// gets a 14-day trial at first sign-in, the trial expires monotonically once
// its window closes, and a successful payment upgrades the record to the
// enterprise plan.
//
// The package splits pure computation from persistence. Evaluate derives the
// entitlement (expired / days remaining / active) from a record and a clock
// with no I/O, while Service owns every write path against a Store. Two
// Store implementations ship: PGStore on pgx and MemStore for tests.
package subscription
