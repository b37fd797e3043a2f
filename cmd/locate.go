/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotblauer/polysplit/catz"
	"github.com/rotblauer/polysplit/index"
	"github.com/rotblauer/polysplit/params"
	"github.com/rotblauer/polysplit/stream"
	"github.com/rotblauer/polysplit/types/polyfeature"
	"github.com/spf13/cobra"
)

// locateCmd represents the locate command
var locateCmd = &cobra.Command{
	Use:   "locate <pieces> <x,y> [<x,y> ...]",
	Short: "Answer point-in-polygon queries against split output",
	Long: `

Builds an in-memory spatial index from a pieces file written by split,
then prints one line per query point: the point and the ids of every
piece containing it.

Examples:

  polysplit locate pieces.geojson.gz -- -93.65,46.05 10.2,43.7
`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		points := make([]orb.Point, 0, len(args)-1)
		for _, arg := range args[1:] {
			xs, ys, ok := strings.Cut(arg, ",")
			if !ok {
				log.Fatalf("Bad query point %q, want x,y", arg)
			}
			x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
			y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
			if errX != nil || errY != nil {
				log.Fatalf("Bad query point %q, want x,y", arg)
			}
			points = append(points, orb.Point{x, y})
		}

		reader, err := catz.NewReader(args[0])
		if err != nil {
			log.Fatalln(err)
		}
		defer reader.Close()

		ctx := context.Background()
		lines, errs := stream.ScanLines(ctx, reader)
		pieces := stream.Collect(ctx, stream.Filter(ctx,
			func(pf *polyfeature.PolyFeature) bool { return pf != nil },
			stream.Transform(ctx, func(line []byte) *polyfeature.PolyFeature {
				pf := &polyfeature.PolyFeature{}
				if err := pf.UnmarshalJSON(line); err != nil {
					slog.Warn("Failed to unmarshal piece", "error", err)
					return nil
				}
				return pf
			}, lines)))
		if err := <-errs; err != nil {
			log.Fatalln("Failed to read pieces:", err)
		}

		idx := index.NewPieceIndex()
		for n, pf := range pieces {
			id := pf.FeatureID(optIDProperty, n)
			switch g := pf.Geometry.(type) {
			case orb.Polygon:
				idx.Insert(g, id)
			case orb.MultiPolygon:
				for _, p := range g {
					idx.Insert(p, id)
				}
			}
		}
		slog.Info("Indexed pieces", "n", idx.Size())

		for _, pt := range points {
			ids := idx.Locate(pt)
			fmt.Printf("%g,%g\t%v\n", pt[0], pt[1], ids)
		}
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)

	locateCmd.Flags().StringVarP(&optIDProperty, "id-property", "n",
		params.DefaultIDProperty, "Integer feature property carrying piece ids")
}
