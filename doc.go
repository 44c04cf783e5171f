// Package notifier provides typed, statically addressed publish/subscribe
// between the tasks of one process.
//
// The core idea is:
//   - An owner declares a fixed set of endpoints in a schema; notifiergen
//     turns it into an owner type, a Target identity space and per-payload-type
//     routing tables.
//   - Every endpoint is a [Service]: a bounded channel plus an activation
//     count. It is active while at least one [Receiver] exists.
//   - A [Sender] fans an event out to every active endpoint of the event's
//     type ([Send], [SendFiltered]) or to explicit targets ([SendTo]).
//
// Addressing:
//   - An [ID] is a numeric id from the declaration order, an optional slot
//     index for array endpoints and a display name.
//   - A target without a slot matches every slot of its endpoint; a target
//     with a slot matches that slot only (see [ID.EqTarget]).
//   - A group shares one ID between several endpoints of different payload
//     types.
//
// Delivery model:
//   - Sends never block. A full or closed channel is a per-target [SendError];
//     the other targets are still tried and the last failure is returned.
//   - Receives are FIFO per channel. [Receiver.Recv] waits under a context,
//     [Receiver.TryRecv] does not wait.
//   - Releasing the last Receiver of a service discards its queued values.
//
// The channel and critical-section backend is selected at build time: Go
// channels by default, a preallocated ring buffer with -tags notifier_ring.
package notifier
