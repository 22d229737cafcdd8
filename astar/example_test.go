package astar_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathtrace/astar"
)

// ExampleSearch finds the cheapest route across a tiny road network where the
// direct road is longer than the detour.
//
//	home ─2─ bakery ─2─ office
//	  └──────────7──────────┘
func ExampleSearch() {
	roads := map[string]map[string]float64{
		"home":   {"bakery": 2, "office": 7},
		"bakery": {"home": 2, "office": 2},
		"office": {"home": 7, "bakery": 2},
	}
	space := astar.Space[string]{
		Boundary:  astar.BoundaryFunc[string](func(s string) bool { _, ok := roads[s]; return ok }),
		Heuristic: astar.HeuristicFunc[string](func(string) float64 { return 0 }),
		Cost:      astar.StepCostFunc[string](func(a, b string) float64 { return roads[a][b] }),
		Choices: astar.ChoiceFunc[string](func(s string) []string {
			switch s {
			case "home":
				return []string{"bakery", "office"}
			case "bakery":
				return []string{"home", "office"}
			default:
				return []string{"home", "bakery"}
			}
		}),
		History: astar.NewMapHistory[string](),
	}

	res, err := astar.Search(space, "home", "office")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("route:", res.Path.States())
	fmt.Println("cost:", res.Path.Cost())

	space.History = astar.NewMapHistory[string]()
	_, err = astar.Search(space, "home", "airport")
	fmt.Println("airport reachable:", !errors.Is(err, astar.ErrNoPath))

	// Output:
	// route: [home bakery office]
	// cost: 4
	// airport reachable: false
}

// ExampleStepper runs the first three expansions of a search on a number line.
func ExampleStepper() {
	space := astar.Space[int]{
		Boundary:  astar.BoundaryFunc[int](func(i int) bool { return i >= 0 && i <= 10 }),
		Heuristic: astar.HeuristicFunc[int](func(i int) float64 { return float64(10 - i) }),
		Cost:      astar.StepCostFunc[int](func(_, _ int) float64 { return 1 }),
		Choices:   astar.ChoiceFunc[int](func(i int) []int { return []int{i - 1, i + 1} }),
		History:   astar.NewMapHistory[int](),
	}
	s, _ := astar.NewStepper(space, 0, 10)
	for i := 0; i < 3; i++ {
		snap, _ := s.Step()
		fmt.Printf("step %d: at %d, frontier %d\n", snap.StepIndex, snap.Current, snap.Frontier)
	}

	// Output:
	// step 1: at 0, frontier 1
	// step 2: at 1, frontier 1
	// step 3: at 2, frontier 1
}
