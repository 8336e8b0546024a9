package fuzztests

import (
	"context"
	"testing"
	"time"

	"bitscript/internal/driver"
	"bitscript/internal/testkit"
)

// pipelineTimeout is the maximum time allowed for one input.
// If compiling takes longer, it indicates a potential infinite loop.
const pipelineTimeout = 5 * time.Second

func FuzzLexerTerminates(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		res, err := driver.CompileSources(context.Background(), []driver.Source{{Name: "fuzz.bs", Content: clamp(input)}}, driver.Options{MaxDiagnostics: 64})
		if err != nil {
			t.Fatal(err)
		}
		if res.Module == nil {
			t.Fatal("no module")
		}
	})
}

func FuzzPipeline(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		done := make(chan *driver.Result, 1)
		go func() {
			res, err := driver.CompileSources(context.Background(), []driver.Source{{Name: "fuzz.bs", Content: input}}, driver.Options{Layout: true, MaxDiagnostics: 128})
			if err != nil {
				panic(err)
			}
			done <- res
		}()

		var res *driver.Result
		select {
		case res = <-done:
		case <-time.After(pipelineTimeout):
			t.Fatalf("compilation did not finish within %v for input %q", pipelineTimeout, input)
		}

		// на ошибочном входе проверяем только, что конвейер не упал
		if res.Bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(res.Module, res.FileSet); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, input)
		}
		if err := testkit.CheckResolved(res.Sema); err != nil {
			t.Fatalf("resolver invariants: %v\ninput: %q", err, input)
		}
		if res.Layout == nil {
			t.Fatalf("clean module without layout: %q", input)
		}
	})
}

func TestSeedsTokenizeToEOF(t *testing.T) {
	for _, s := range languageSeeds {
		res, err := driver.CompileSources(context.Background(), []driver.Source{{Name: "seed.bs", Content: []byte(s)}}, driver.Options{})
		if err != nil {
			t.Fatal(err)
		}
		if res.Module == nil || res.Builder == nil {
			t.Fatalf("seed %q produced no module", s)
		}
	}
}
