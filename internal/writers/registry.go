// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"fragasm/pkg/api"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// Args is what a registered writer consumes.
type Args struct {
	Header bool
	In     <-chan api.AssemblyV1
}

// WriterFunc drains args.In into w.
type WriterFunc func(w io.Writer, args Args) error

// Writers maps format → handler. Formats register in init() blocks.
var Writers = map[string]WriterFunc{}

// Register is idempotent, last wins.
func Register(format string, fn WriterFunc) { Writers[format] = fn }

func Known(format string) bool {
	_, ok := Writers[format]
	return ok
}

// Formats lists registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(Writers))
	for f := range Writers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, args Args) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, args)
}

// StartWriter spins up a writer goroutine. Send results on the returned
// channel, close it, then read the single error value.
func StartWriter(out io.Writer, format string, header bool, bufSize int) (chan<- api.AssemblyV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.AssemblyV1, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := Write(format, out, Args{Header: header, In: in})
		// drain so senders never block on a failed writer
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
