package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragasm/pkg/api"
)

var sample = []api.AssemblyV1{
	{RunID: "r1", Source: "a.fa", Mode: "sequential", Matcher: "kmp", Fragments: 4, Length: 19, Sequence: "ATTAGACCTGCCGGAATAC"},
	{RunID: "r1", Source: "b.fa", Mode: "parallel", Matcher: "naive", Workers: 2, Fragments: 1, Length: 4, Sequence: "ACGT"},
}

func run(t *testing.T, format string, header bool) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartWriter(&buf, format, header, 1)
	for _, a := range sample {
		in <- a
	}
	close(in)
	require.NoError(t, <-done)
	return buf.String()
}

func TestText(t *testing.T) {
	want := TextHeader + "\n" +
		"a.fa\tsequential\tkmp\t4\t19\tATTAGACCTGCCGGAATAC\n" +
		"b.fa\tparallel\tnaive\t1\t4\tACGT\n"
	assert.Equal(t, want, run(t, FormatText, true))
	assert.False(t, strings.HasPrefix(run(t, FormatText, false), "source"))
}

func TestJSONArray(t *testing.T) {
	var got []api.AssemblyV1
	require.NoError(t, json.Unmarshal([]byte(run(t, FormatJSON, true)), &got))
	assert.Equal(t, sample, got)
}

func TestJSONL_StreamsValidV1(t *testing.T) {
	out := run(t, FormatJSONL, true)
	sc := bufio.NewScanner(strings.NewReader(out))
	var n int
	for sc.Scan() {
		var v api.AssemblyV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), "line %d", n+1)
		assert.Equal(t, sample[n], v)
		n++
	}
	assert.Equal(t, 2, n)
}

func TestFASTA(t *testing.T) {
	out := run(t, FormatFASTA, true)
	assert.Equal(t,
		">assembly_1 len=19 fragments=4 mode=sequential source=a.fa\nATTAGACCTGCCGGAATAC\n"+
			">assembly_2 len=4 fragments=1 mode=parallel source=b.fa\nACGT\n",
		out)
}

func TestWriteWrapped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWrapped(&buf, "ABCDEFG", 3))
	assert.Equal(t, "ABC\nDEF\nG\n", buf.String())

	buf.Reset()
	require.NoError(t, writeWrapped(&buf, "ABCDEF", 3))
	assert.Equal(t, "ABC\nDEF\n", buf.String())
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartWriter(&b, "nope-format", false, 1)
	in <- sample[0] // drained even though dispatch failed
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{FormatFASTA, FormatJSON, FormatJSONL, FormatText}, Formats())
	assert.True(t, Known(FormatText))
	assert.False(t, Known("xml"))
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterErrorsPropagate(t *testing.T) {
	in, done := StartWriter(failWriter{io.ErrShortWrite}, FormatText, true, 1)
	close(in)
	assert.ErrorIs(t, <-done, io.ErrShortWrite)
}

func TestJSONL_BrokenPipeOnFlushIsQuiet(t *testing.T) {
	in := make(chan api.AssemblyV1, 1)
	in <- sample[0]
	close(in)
	assert.NoError(t, StreamJSONL(failWriter{syscall.EPIPE}, in))
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(fmt.Errorf("write: %w", io.ErrClosedPipe)))
	assert.False(t, IsBrokenPipe(errors.New("other")))
	assert.False(t, IsBrokenPipe(nil))
}
