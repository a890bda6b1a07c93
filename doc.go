// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pagestream provides a page-oriented buffered input stream
// abstraction over heterogeneous byte sources: in-memory slices,
// memory-mapped files, synchronous OS file reads, and non-blocking async
// devices, presented through one consumer-facing InputStream contract.
//
// Semantics and design:
//   - Hot path first: Readable/ReadableN inspect only the current span on
//     the fast path; page flips, refills, and waiting live on a separate,
//     non-inlined slow path (the refill loop in stream.go).
//   - Non-blocking first: ErrWouldBlock and ErrMore are control-flow signals,
//     not failures. Any returned byte count still represents real progress.
//   - Readability establishes a precondition: once Readable/ReadableN return
//     true, the corresponding Peek/Read/Advance calls are guaranteed not to
//     fault for the verified byte count.
//   - Single owner: an InputStream is not safe for concurrent use. Handle
//     wraps one InputStream with move-only ownership semantics (Go has no
//     compile-time move checking, so this is enforced by convention plus a
//     finalizer-based leak warning; see handle.go).
package pagestream
