// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package bo

import "os"

// Default returns the host's native memory page size.
func Default() int { return os.Getpagesize() }
