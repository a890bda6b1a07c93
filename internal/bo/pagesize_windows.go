// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package bo

import "os"

// Default returns the host's memory page size as reported by
// os.Getpagesize.
func Default() int { return os.Getpagesize() }
