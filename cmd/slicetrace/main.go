// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command slicetrace runs the backward slicer against one of the built-in
// synthetic scenarios and prints the resolved jump-table format, index and
// bounding interval.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/justinhachemeister/reko/internal/synth"
	"github.com/justinhachemeister/reko/slicer"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: slicetrace [options] scenario

ex:
 $> slicetrace -v mask-bounded-switch

options:
`,
		)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\navailable scenarios:\n")
		for _, name := range scenarioNames() {
			fmt.Fprintf(os.Stderr, "  - %s\n", name)
		}
		os.Exit(1)
	}
}

var (
	flagVerbose = flag.Bool("v", false, "enable/disable verbose step tracing")
	flagBound   = flag.Int("n", 0, "bound the number of slicer steps (0 means unbounded)")
)

func scenarioNames() []string {
	scenarios := synth.Scenarios()
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	log.SetPrefix("slicetrace: ")
	log.SetFlags(0)

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
	}

	scenario, ok := synth.Scenarios()[flag.Arg(0)]
	if !ok {
		log.Printf("unknown scenario %q", flag.Arg(0))
		flag.Usage()
	}

	logger := log.New(os.Stdout, "", 0)
	opts := []slicer.Option{WithTraceLevel(logger, *flagVerbose)}
	if *flagBound > 0 {
		opts = append(opts, slicer.WithStepBound(*flagBound))
	}
	s := slicer.New(scenario.Host, opts...)

	ok, err := s.Start(scenario.Block, scenario.Cursor, scenario.Target)
	if err != nil {
		log.Fatalf("could not start slice: %v", err)
	}
	if !ok {
		fmt.Printf("scenario %q: target carries no live registers, nothing to slice\n", scenario.Name)
		return
	}

	for {
		more, err := s.Step()
		if err != nil {
			log.Fatalf("could not step slice: %v", err)
		}
		if !more {
			break
		}
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	fmt.Printf("jump_table_format:  %v\n", s.JumpTableFormat())
	fmt.Printf("jump_table_index:   %v\n", s.JumpTableIndex())
	fmt.Printf("jump_table_index_to_use: %v\n", s.JumpTableIndexToUse())
	fmt.Printf("jump_table_index_interval: %v\n", s.JumpTableIndexInterval())
	if s.Truncated() {
		fmt.Printf("(truncated at the configured step bound)\n")
	}
}

// WithTraceLevel routes the driver's diagnostics to logger only when
// verbose tracing was requested; otherwise diagnostics are discarded, as
// with slicer.New's own default.
func WithTraceLevel(logger *log.Logger, verbose bool) slicer.Option {
	if !verbose {
		return func(*slicer.Slicer) {}
	}
	return slicer.WithLogger(logger)
}
