// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix && !windows

package bo

// defaultPageSize is a portable fallback for platforms the runtime cannot
// query directly.
const defaultPageSize = 4096

// Default returns the portable fallback page size.
func Default() int { return defaultPageSize }
