// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/justinhachemeister/reko/internal/synth"
	"github.com/justinhachemeister/reko/slicer"
)

func TestScenariosRunToCompletion(t *testing.T) {
	for name, scenario := range synth.Scenarios() {
		t.Run(name, func(t *testing.T) {
			s := slicer.New(scenario.Host)
			ok, err := s.Start(scenario.Block, scenario.Cursor, scenario.Target)
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			if !ok {
				t.Fatalf("Start returned false for scenario %q", name)
			}
			for i := 0; i < 1000; i++ {
				more, err := s.Step()
				if err != nil {
					t.Fatalf("Step: %v", err)
				}
				if !more {
					return
				}
			}
			t.Fatalf("scenario %q did not terminate within 1000 steps", name)
		})
	}
}

func TestScenarioNamesMatchUsage(t *testing.T) {
	names := scenarioNames()
	if len(names) != len(synth.Scenarios()) {
		t.Fatalf("scenarioNames returned %d names, want %d", len(names), len(synth.Scenarios()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("scenarioNames is not sorted: %v", names)
		}
	}
}
