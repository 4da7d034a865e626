// internal/writers/text.go
package writers

import (
	"fmt"
	"io"

	"fragasm/pkg/api"
)

// TextHeader names the TSV columns of the text format.
const TextHeader = "source\tmode\tmatcher\tfragments\tlength\tsequence"

func init() {
	Register(FormatText, func(w io.Writer, args Args) error {
		return StreamText(w, args.In, args.Header)
	})
}

// StreamText prints one TSV row per result.
func StreamText(w io.Writer, in <-chan api.AssemblyV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TextHeader); err != nil {
			return err
		}
	}
	for a := range in {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			a.Source, a.Mode, a.Matcher, a.Fragments, a.Length, a.Sequence,
		); err != nil {
			return err
		}
	}
	return nil
}
