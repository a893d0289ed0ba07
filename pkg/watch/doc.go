// Package watch notifies subscribers when a single file changes.
//
// A [FileWatcher] observes one path. It compares a BLAKE3 digest of the
// file content against the last digest it saw, and re-checks on a fixed
// poll interval as well as whenever fsnotify reports activity in the
// parent directory. Subscribers register a [Callback] and get back a
// [Handle]; closing the handle unregisters exactly that callback.
//
// Delivery is asynchronous. Callbacks run on a background goroutine and
// may observe the file some time after the write that triggered them.
// Several quick writes can collapse into one notification.
package watch
