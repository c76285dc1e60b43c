// Command predict-random drives a reference glibc TYPE_3 generator
// from a seed and feeds its output into a fresh solver until the
// solver reconstructs an equivalent generator, then reports whether
// the reconstructed state table matches the source.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/spacemonkeygo/monotime"

	"github.com/surrealwaffle/predicting-random/internal/prng"
	"github.com/surrealwaffle/predicting-random/internal/solver"
)

var verbose = flag.Bool("verbose", false, "dump the reconstructed state table with go-spew before the summary")

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = "15:04:05.000"
	})).Level(zerolog.InfoLevel)

	if flag.NArg() != 1 {
		fmt.Printf("usage: %s <seed>\n", os.Args[0])
		os.Exit(1)
	}

	seed, err := strconv.ParseUint(flag.Arg(0), 10, 64)
	if err != nil {
		fmt.Printf("usage: %s <seed>\n", os.Args[0])
		os.Exit(1)
	}
	if seed == 0 {
		fmt.Println("Please provide a non-zero seed")
		os.Exit(1)
	}

	fmt.Printf("testing seed: %d\n", seed)

	gen := prng.NewGenerator(uint32(seed))
	start := monotime.Monotonic()
	solvedGen, samples := reconstruct(gen, log)
	elapsed := monotime.Monotonic() - start

	log.Info().
		Dur("elapsed", elapsed).
		Int("samples", samples).
		Msg("reconstruction finished")

	matched := gen.Equal(solvedGen)
	status := "reconstructed"
	if !matched {
		status = "failed to reconstruct"
	}
	fmt.Printf("%s generator from seed %d\n", status, seed)
	fmt.Printf("from %d samples\n", samples)

	if *verbose {
		spew.Fdump(os.Stderr, solvedGen.Table())
	}

	fmt.Printf("%3s %8s %8s\n", "pos", "source", "solved")
	for i := 0; i < 31; i++ {
		pos := -30 + i
		fmt.Printf("%3d %08X %08X\n", pos, gen.StateAt(pos), solvedGen.StateAt(pos))
	}

	if !matched {
		os.Exit(1)
	}
}

// reconstruct feeds gen's output into a fresh solver until it
// reconstructs an equivalent generator, logging progress at trace
// level along the way.
func reconstruct(gen prng.Generator, log zerolog.Logger) (prng.Generator, int) {
	s := solver.New()
	samples := 0
	for {
		samples++
		out := gen.Advance()
		solved, ok := s.Feed(out)
		if samples%200 == 0 {
			log.Trace().Int("samples", samples).Int("rank", s.Rank()).Msg("still solving")
		}
		if ok {
			return solved, samples
		}
	}
}
