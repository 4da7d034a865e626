package appcore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fragasm-core/assemble"
	"fragasm-core/overlap"

	"fragasm/internal/metrics"
	"fragasm/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func input(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const challenge = ">1\nATTAGACCTG\n>2\nCCTGCCGGAA\n>3\nAGACCTGCCG\n>4\nGCCGGAATAC\n"

func TestRun_JSON(t *testing.T) {
	a := input(t, "a.fa", challenge)
	b := input(t, "b.fa", ">only\nACGT\n")

	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{
		Inputs:  []string{a, b},
		Matcher: overlap.KindNaive,
		Mode:    assemble.ModeParallel,
		Workers: 3,
		Output:  "json",
	})
	require.Equal(t, ExitOK, code, errBuf.String())

	var got []api.AssemblyV1
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	want := []api.AssemblyV1{
		{Source: a, Mode: "parallel", Matcher: "naive", Workers: 3, Fragments: 4, Length: 19, Sequence: "ATTAGACCTGCCGGAATAC"},
		{Source: b, Mode: "parallel", Matcher: "naive", Workers: 3, Fragments: 1, Length: 4, Sequence: "ACGT"},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(api.AssemblyV1{}, "RunID", "DurationMS")); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got[0].RunID, got[1].RunID)
}

func TestRun_Defaults(t *testing.T) {
	a := input(t, "a.fa", challenge)
	mx := metrics.New()
	var out, errBuf bytes.Buffer
	code := Run(context.Background(), &out, &errBuf, Options{
		Inputs:  []string{a},
		Output:  "text",
		Metrics: mx,
	})
	require.Equal(t, ExitOK, code, errBuf.String())
	assert.Contains(t, out.String(), "\tsequential\tkmp\t4\t19\t")
	n, err := testutil.GatherAndCount(mx.Registry(), "fragasm_lps_cache_entries")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_ExitCodes(t *testing.T) {
	good := input(t, "good.fa", challenge)
	stalled := input(t, "stalled.fa", ">a\nABC\n>b\nQQQQ\n>c\nBCA\n>d\nCAB\n")
	missing := filepath.Join(t.TempDir(), "missing.fa")

	cases := []struct {
		name   string
		inputs []string
		output string
		want   int
	}{
		{"ok", []string{good}, "text", ExitOK},
		{"stalled", []string{stalled, good}, "text", ExitAssembly},
		{"missing beats stalled", []string{stalled, missing}, "text", ExitIO},
		{"bad output", []string{good}, "yaml", ExitUsage},
		{"empty file", []string{input(t, "empty.fa", "")}, "text", ExitAssembly},
	}
	for _, tc := range cases {
		var out, errBuf bytes.Buffer
		code := Run(context.Background(), &out, &errBuf, Options{Inputs: tc.inputs, Output: tc.output})
		assert.Equal(t, tc.want, code, "%s: %s", tc.name, errBuf.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	code := Run(ctx, &out, &bytes.Buffer{}, Options{Inputs: []string{input(t, "a.fa", challenge)}, Output: "jsonl"})
	assert.Equal(t, ExitCanceled, code)
	assert.Zero(t, out.Len())
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitIO, exitCodeFor(readError{os.ErrNotExist}))
	assert.Equal(t, ExitAssembly, exitCodeFor(fmt.Errorf("x: %w", assemble.ErrMalformedInput)))
}
