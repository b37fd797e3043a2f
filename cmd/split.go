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
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rotblauer/polysplit/catz"
	"github.com/rotblauer/polysplit/geo/engine"
	"github.com/rotblauer/polysplit/geo/split"
	"github.com/rotblauer/polysplit/params"
	"github.com/rotblauer/polysplit/state"
	"github.com/rotblauer/polysplit/stream"
	"github.com/rotblauer/polysplit/types/polyfeature"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var optMaxVertices int
var optMaxDepth int
var optIDProperty string
var optEngine string
var optResume bool

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [input] [output]",
	Short: "Split (multi)polygon features until each piece fits the vertex budget",
	Long: `

Features are decoded as GeoJSON lines from input and each (multi)polygon is
recursively split by centroid-cornered envelope quadrants until every piece's
exterior ring has at most --max-vertices points. Each piece is written to
output as a GeoJSON line carrying the source feature's integer id.

Input and output default to stdin/stdout; a .gz suffix means gzip.
Null or invalid geometries cost a warning and zero pieces, never the run.
A failed write to output is fatal.

Flags:

  -m, --max-vertices  Max points per output exterior ring. (Default is 250; minimum is 6.)
  -n, --id-property   Integer feature property to pass through. Features
                      without it use their position in the file. (Default is "id".)
      --engine        Geometry engine: planar (pure Go) or geos (libgeos via cgo).
      --max-depth     Quadrant recursion limit; over-budget pieces at the limit
                      are emitted as-is with a warning.
      --resume        Skip input lines recorded as consumed by a previous run
                      on the same file (append-only sources only).

Examples:

  zcat countries.geojson.gz | polysplit split -m 100 > pieces.geojson
  polysplit split -n OBJECTID lakes.geojson.gz pieces.geojson.gz
`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		if optMaxVertices < params.MinMaxVertices {
			log.Fatalf("--max-vertices must be at least %d", params.MinMaxVertices)
		}
		eng, err := engine.New(optEngine)
		if err != nil {
			log.Fatalln(err)
		}
		splitter, err := split.New(eng, params.SplitConfig{
			MaxVertices: optMaxVertices,
			MaxDepth:    optMaxDepth,
		})
		if err != nil {
			log.Fatalln(err)
		}

		input, output := "-", "-"
		if len(args) > 0 {
			input = args[0]
		}
		if len(args) > 1 {
			output = args[1]
		}

		reader, err := catz.NewReader(input)
		if err != nil {
			log.Fatalln(err)
		}
		defer reader.Close()
		writer, err := catz.NewWriter(output)
		if err != nil {
			log.Fatalln(err)
		}

		// Resume bookkeeping only applies to real files; a pipe has no
		// stable identity to key on.
		var resumeFrom uint64
		var resumeLog *state.ResumeLog
		if optResume && input != "-" {
			resumeLog, err = state.Open(params.DatadirRoot)
			if err != nil {
				log.Fatalln(err)
			}
			resumeFrom, err = resumeLog.Lines(input)
			if err != nil {
				log.Fatalln(err)
			}
			if resumeFrom > 0 {
				slog.Info("Resuming", "input", input, "skip.lines", resumeFrom)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer stop()

		meter := stream.NewMeter(params.DefaultMeterInterval)
		lines, errs := stream.ScanLines(ctx, reader)

		// Decode stage. Lines that are resumed, blank, non-feature, or
		// unreadable map to nil and get filtered out below; lineN is
		// safe to read once the pipeline drains.
		var lineN uint64
		decoded := stream.Transform(ctx, func(line []byte) *polyfeature.PolyFeature {
			lineN++
			if lineN <= resumeFrom || len(line) == 0 {
				return nil
			}
			if gjson.GetBytes(line, "type").String() != "Feature" {
				slog.Warn("Skipping non-feature line", "line", lineN)
				return nil
			}
			pf := &polyfeature.PolyFeature{}
			if err := pf.UnmarshalJSON(line); err != nil {
				slog.Warn("Failed to unmarshal feature", "line", lineN, "error", err)
				return nil
			}
			meter.MarkRead(len(line))
			return pf
		}, lines)
		features := stream.Filter(ctx, func(pf *polyfeature.PolyFeature) bool {
			return pf != nil
		}, decoded)

		var featureN uint64
		for pf := range features {
			id := pf.FeatureID(optIDProperty, int(featureN))
			featureN++

			pieces := splitter.Split(pf.Geometry)
			for piece := range stream.Slice(ctx, pieces) {
				data, err := polyfeature.NewPiece(piece, optIDProperty, id).MarshalJSON()
				if err != nil {
					log.Fatalln("Failed to encode piece:", err)
				}
				if _, err := writer.Write(append(data, '\n')); err != nil {
					log.Fatalln("Failed to write piece:", err)
				}
			}
			meter.MarkWritten(len(pieces))
		}
		if err := <-errs; err != nil {
			slog.Error("Input scan failed", "error", err)
		}

		if err := writer.Close(); err != nil {
			log.Fatalln("Failed to close output:", err)
		}
		if resumeLog != nil {
			if err := resumeLog.SetLines(input, lineN); err != nil {
				slog.Error("Failed to record resume state", "error", err)
			}
			resumeLog.Close()
		}
		meter.Stop()
		slog.Info("Split done", "features.read", meter.Read(), "pieces.written", meter.Written())
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&optMaxVertices, "max-vertices", "m",
		params.DefaultSplitConfig.MaxVertices, "Max vertices per output polygon exterior ring")
	splitCmd.Flags().IntVar(&optMaxDepth, "max-depth",
		params.DefaultSplitConfig.MaxDepth, "Quadrant recursion depth limit")
	splitCmd.Flags().StringVarP(&optIDProperty, "id-property", "n",
		params.DefaultIDProperty, "Integer feature property passed through to pieces")
	splitCmd.Flags().StringVar(&optEngine, "engine", "planar",
		"Geometry engine: planar or geos")
	splitCmd.Flags().BoolVar(&optResume, "resume", false,
		"Skip lines consumed by a previous run on the same input file")
}
