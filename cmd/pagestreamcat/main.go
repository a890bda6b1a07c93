// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command pagestreamcat copies a file to stdout through pagestream's
// FileInput, then reports its final position and length to stderr. It
// exists to exercise the consumer contract end-to-end against a real file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.pagestream.dev/pagestream"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pagestreamcat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	offset := fs.Int64("offset", 0, "byte offset to start reading from")
	pageSize := fs.Int("pagesize", 0, "allocation granule (0 = default)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: pagestreamcat [-offset n] [-pagesize n] <path>")
		return 2
	}

	var opts []pagestream.Option
	if *pageSize > 0 {
		opts = append(opts, pagestream.WithPageSize(*pageSize))
	}

	s, err := pagestream.FileInput(fs.Arg(0), *offset, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "pagestreamcat: %v\n", err)
		return 1
	}
	defer s.Close()

	buf := make([]byte, 32*1024)
	for s.Readable() {
		n, rerr := s.ReadIntoEx(buf)
		if n > 0 {
			if _, werr := stdout.Write(buf[:n]); werr != nil {
				fmt.Fprintf(stderr, "pagestreamcat: write: %v\n", werr)
				return 1
			}
		}
		if rerr != nil {
			fmt.Fprintf(stderr, "pagestreamcat: read: %v\n", rerr)
			return 1
		}
	}
	if err := s.Err(); err != nil {
		fmt.Fprintf(stderr, "pagestreamcat: %v\n", err)
		return 1
	}

	length, ok := s.Len()
	attrs := []any{"pos", s.Pos()}
	if ok {
		attrs = append(attrs, "len", length)
	}
	slog.New(slog.NewTextHandler(stderr, nil)).Info("pagestreamcat: done", attrs...)
	return 0
}
