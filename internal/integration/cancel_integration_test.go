package integration

import (
	"context"
	"io"
	"testing"

	"fragasm/internal/app"
)

func TestCanceledBeforeStart_Exit130(t *testing.T) {
	fa, _ := randomFile(t, 9, 400)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, mode := range []string{"sequential", "parallel", "merge"} {
		code := app.RunContext(ctx, []string{"-q", "--mode", mode, fa}, io.Discard, io.Discard)
		if code != 130 {
			t.Fatalf("%s: expected exit 130 on cancel, got %d", mode, code)
		}
	}
}
