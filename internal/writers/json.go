// internal/writers/json.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"fragasm/pkg/api"
)

// Reuse a 64 KiB buffered writer across JSONL writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

func init() {
	// JSON array, buffered
	Register(FormatJSON, func(w io.Writer, args Args) error {
		list := make([]api.AssemblyV1, 0, 8)
		for a := range args.In {
			list = append(list, a)
		}
		return WriteJSON(w, list)
	})

	// JSONL streaming
	Register(FormatJSONL, func(w io.Writer, args Args) error {
		return StreamJSONL(w, args.In)
	})
}

// WriteJSON writes list as an indented JSON array.
func WriteJSON(w io.Writer, list []api.AssemblyV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// StreamJSONL writes one JSON object per line. A broken pipe on the final
// flush is not an error.
func StreamJSONL(out io.Writer, in <-chan api.AssemblyV1) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for a := range in {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
