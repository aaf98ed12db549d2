// Copyright © 2024 The myphysicslab-sub011 Authors.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command demo runs one of the built-in scenarios and reports on its
// stepping:
//
//	demo [scenario name]
//
// Invoking demo without arguments lists the available scenarios.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/myphysicslab/myphysicslab-sub011/scenario"
	"github.com/myphysicslab/myphysicslab-sub011/solver"
)

// run combines a scenario's tag and description with the function that
// builds and steps it.
type run struct {
	tag         string
	description string
	function    func() error
}

func main() {
	runs := []run{
		{"square", "square: unit square bouncing on a floor", runSquareOnFloor},
		{"discs", "discs: two discs in an elastic head-on collision", runTwoDiscsHeadOn},
		{"stack", "stack: three blocks at rest on a floor", runBlockStackOnWall},
		{"pendulum", "pendulum: a bob swinging on a circular path", runPendulum},
		{"corners", "corners: two acute wedges sliding corner to corner", runCornerCornerSlide},
		{"pile", "pile: serial-grouped solver against a five-body pile", runSerialPile},
	}

	for _, arg := range os.Args[1:] {
		for _, r := range runs {
			if arg == r.tag {
				if err := r.function(); err != nil {
					log.Fatalf("%s: %v", r.tag, err)
				}
				return
			}
		}
	}

	fmt.Println("Usage: demo [scenario]")
	fmt.Println("Scenarios are:")
	for _, r := range runs {
		fmt.Printf("   %s\n", r.description)
	}
}

// stepAndReport advances built by dt for the given number of steps,
// printing one line every 20 steps with the simulation's total energy
// and the most recent step's collision/bisection counts.
func stepAndReport(built *scenario.Built, dt float64, steps int) error {
	for i := 0; i < steps; i++ {
		report, err := built.Advance.Step(dt)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if i%20 == 0 {
			fmt.Printf("step %4d  t=%6.3f  energy=%8.4f  collisions=%d  bisect=%d\n",
				i, built.Advance.Sim.Vars().Time(), built.Advance.Sim.TotalEnergy(),
				report.CollisionsHandled, report.BisectionDepth)
		}
	}
	return nil
}

func runSquareOnFloor() error {
	built, err := scenario.Build(scenario.SquareOnFloor())
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.01, 300)
}

func runTwoDiscsHeadOn() error {
	built, err := scenario.Build(scenario.TwoDiscsHeadOn())
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.01, 500)
}

func runBlockStackOnWall() error {
	built, err := scenario.Build(scenario.BlockStackOnWall())
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.01, 200)
}

func runPendulum() error {
	built, err := scenario.BuildPendulum(2)
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.01, 400)
}

func runCornerCornerSlide() error {
	built, err := scenario.BuildCornerCornerSlide()
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.005, 1200)
}

func runSerialPile() error {
	built, err := scenario.Build(scenario.SerialVsSimultaneousPile(solver.SERIAL_GROUPED))
	if err != nil {
		return err
	}
	return stepAndReport(built, 0.01, 300)
}
