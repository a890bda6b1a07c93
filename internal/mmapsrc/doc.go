// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mmapsrc provides the OS-specific memory-map plumbing behind the
// MappedFile page source: map a file read-only, expose it as a byte slice,
// and release it on Close. Split unix/windows by build tag since the
// syscalls involved are platform-specific.
package mmapsrc
