// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bo reports the host's native memory page size where the runtime
// can report one, and a portable fallback constant elsewhere.
// MappedFileInput checks offset alignment against it; the default Page
// allocation granule is the separate DefaultPageSize constant.
package bo
