// internal/writers/fasta.go
package writers

import (
	"fmt"
	"io"

	"fragasm/pkg/api"
)

// FASTALineWidth is the sequence wrap width; 0 disables wrapping.
const FASTALineWidth = 60

func init() {
	Register(FormatFASTA, func(w io.Writer, args Args) error {
		return StreamFASTA(w, args.In)
	})
}

// StreamFASTA writes one record per result, header first, sequence wrapped.
func StreamFASTA(w io.Writer, in <-chan api.AssemblyV1) error {
	idx := 1
	for a := range in {
		if _, err := fmt.Fprintf(w, ">assembly_%d len=%d fragments=%d mode=%s source=%s\n",
			idx, a.Length, a.Fragments, a.Mode, a.Source,
		); err != nil {
			return err
		}
		if err := writeWrapped(w, a.Sequence, FASTALineWidth); err != nil {
			return err
		}
		idx++
	}
	return nil
}

func writeWrapped(w io.Writer, s string, width int) error {
	if width <= 0 || len(s) <= width {
		_, err := io.WriteString(w, s+"\n")
		return err
	}
	for len(s) > 0 {
		n := min(width, len(s))
		if _, err := io.WriteString(w, s[:n]+"\n"); err != nil {
			return err
		}
		s = s[n:]
	}
	return nil
}
