// Package dirlock provides cross-process mutual exclusion for a shared
// directory, typically a compilation cache that several independent
// processes read and write.
//
// The lock is advisory: it is taken on a fixed sentinel file
// (".lockfile") inside the protected directory and only excludes other
// users of this package, not arbitrary filesystem writers. The sentinel
// is created on first use and intentionally left behind on release.
//
// # APIs
//
// Three surfaces share the same sentinel:
//
//   - Handle form: [New] builds a [DirLock]; [DirLock.Lock] blocks until
//     the exclusive lock is held and [DirLock.Unlock] releases it.
//   - Scoped form: [With] runs a function under the lock and releases it
//     on every exit path, including when the function fails. [WithKeep]
//     is the hand-off variant that leaves the lock held on success.
//   - Process-wide form: [Acquire] and [Release] manage a single
//     explicit lock per process, for callers that cannot scope the hold
//     to one function. A second Acquire before Release is a programming
//     error and fails with [ErrAlreadyHeld].
//
// The scoped and process-wide forms are deliberately independent: they
// do not see each other's state, so nesting them on the same directory
// in one process will deadlock, exactly as two unrelated processes
// would. Acquisition has no timeout; a blocked caller waits until the
// current holder releases.
package dirlock
