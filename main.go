// strata prepares one print layer: it evaluates a layer script, bridges
// nearby contours into fewer printable loops, and reports the resulting
// plan as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
)

func main() {
	script := flag.String("script", "", "path to the layer script")
	lineWidth := flag.Float64("line-width", 0, "override line width (mm)")
	maxDist := flag.Float64("max-dist", 0, "override bridging reach (mm)")
	plotPath := flag.String("plot", "", "write a diagnostic image (.png/.svg) to this path")
	flag.Parse()

	if *script == "" {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*script)
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	opts := Options{PlotPath: *plotPath}
	if *lineWidth > 0 {
		opts.LineWidth = int64(math.Round(*lineWidth * 1000))
	}
	if *maxDist > 0 {
		opts.MaxDist = int64(math.Round(*maxDist * 1000))
	}

	result := NewApp().Run(string(source), opts)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
