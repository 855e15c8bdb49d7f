// Package selection deterministically picks one candidate from a pool.
//
// The stability invariant is the heart of the package: the candidate
// chosen for a past date must never change when new candidates are later
// appended to the pool. Candidates are therefore ordered by id
// lexicographically, never by pool insertion order, and the selection
// index is a pure hash of the date (daily) or the request seed
// (practice) modulo the ordered pool size.
//
// Daily selection additionally consults a persisted anti-repeat tracker
// so the same text is not served twice until the pool is nearly
// exhausted (unused fraction below 10%), at which point the tracker is
// reset and the cycle begins again.
package selection
