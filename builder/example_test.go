package builder_test

import (
	"fmt"

	"github.com/katalvlaran/reliaroute/builder"
	"github.com/katalvlaran/reliaroute/timetable"
)

// ExampleBuild assembles two lines joined by a short walk.
func ExampleBuild() {
	f, err := builder.Build(
		[]builder.BuilderOption{builder.WithService(8*3600, 9*3600, 1800)},
		builder.Line("red", "A", "B"),
		builder.Line("blue", "C", "D"),
		builder.Walk("B", "C"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, route := range f.Network.Routes() {
		fmt.Print(route, ":")
		for _, at := range f.Arrivals(route, 0) {
			fmt.Print(" ", timetable.FormatClock(at))
		}
		fmt.Println()
	}
	// Output:
	// blue: 08:01:00 08:31:00
	// red: 08:00:00 08:30:00 09:00:00
}
