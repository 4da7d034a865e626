// core/fasta/reader.go
package fasta

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// HeaderMarker starts a new record. Any line containing it is a header.
const HeaderMarker = '>'

const maxLine = 64 * 1024 * 1024

// Record is one fragment record: the header text after the marker and the
// concatenated, trimmed sequence lines that follow it.
type Record struct {
	ID  string
	Seq string
}

// ScanRecordsCtx parses records from r and calls emit for each non-empty one.
// Lines before the first header are ignored. Records whose sequence is empty
// are dropped.
func ScanRecordsCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		cur     Record
		inRec   bool
		builder strings.Builder
	)
	flush := func() error {
		if !inRec || builder.Len() == 0 {
			return nil
		}
		cur.Seq = builder.String()
		return emit(cur)
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if i := strings.IndexByte(line, HeaderMarker); i >= 0 {
			if err := flush(); err != nil {
				return err
			}
			cur = Record{ID: parseHeaderID(line[i+1:])}
			builder.Reset()
			inRec = true
			continue
		}
		if !inRec {
			continue
		}
		builder.WriteString(strings.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}

// ReadRecords opens path ("-" for stdin, gzip detected) and collects its records.
func ReadRecords(ctx context.Context, path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var out []Record
	err = ScanRecordsCtx(ctx, rc, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ReadFragments is ReadRecords reduced to the sequences, in file order.
func ReadFragments(ctx context.Context, path string) ([]string, error) {
	recs, err := ReadRecords(ctx, path)
	if err != nil {
		return nil, err
	}
	return Fragments(recs), nil
}

func Fragments(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Seq
	}
	return out
}

// parseHeaderID returns the first whitespace-separated token of a header.
func parseHeaderID(h string) string {
	f := strings.Fields(h)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
