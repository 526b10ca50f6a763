// Package session holds the resumable state of a device-management client
// session and persists it through the persistence engine.
//
// # Snapshot Format
//
// A snapshot is one traversal of State:
//
//	[Magic "FSS"(3)][Version(1)]
//	[Endpoint(string)][Lifetime(i32)][Reserved(u64)][LastUpdate(i64)]
//	[QueueMode(bool)][Backoff(f64)][Jitter(f32)]        Backoff/Jitter: version 2 only
//	[PSKIdentity(sized buffer)][Token(8)]
//	[Servers(list)][Observations(sorted set)]
//
// A server is [SSID(u16)][URI(string)][Binding(string)][Priority(u8)][Disabled(bool)].
// An observation is [SSID(u16)][Path(string)][MinPeriod(i32)][MaxPeriod(i32)][LastValue(sized buffer)].
//
// Reserved is a retired field. It is written as zero and skipped when read.
//
// Version 1 snapshots are still readable; Backoff and Jitter then keep their
// zero values.
package session
