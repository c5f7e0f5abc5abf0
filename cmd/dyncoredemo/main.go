// Copyright 2026 The Dyncore Authors
// This file is part of dyncore.
//
// dyncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dyncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with dyncore. If not, see <http://www.gnu.org/licenses/>.

// Command dyncoredemo wires every package together end to end, against a
// tiny two-type stock-and-flow metamodel: create a frame, accept it, derive,
// mutate and accept a second frame, encode the second frame's snapshots as
// foreign records, undo back to the first, and render the first frame as a
// DOT graph. It is demo wiring, not a persistence or import/export CLI (those
// are out of scope); flags and file IO belong to a layer this repo doesn't
// own.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dyncore/dyncore/graphview"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/memory"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/predicate"
	"github.com/dyncore/dyncore/record"
	"github.com/dyncore/dyncore/variant"
)

var (
	stockType = &model.StaticType{TypeName: "Stock", Role: model.Node, TraitSet: []model.Trait{{Name: "Named"}}}
	flowType  = &model.StaticType{TypeName: "Flow", Role: model.Edge}
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dyncoredemo: logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	mm := model.NewStaticMetamodel(stockType, flowType)
	alloc := ident.NewAllocator(1)

	nonNegative := predicate.Constraint{
		Name:        "stock-value-non-negative",
		Description: "a Stock's value attribute must never go negative",
		Match:       predicate.IsType{TypeName: "Stock"},
		Requirement: predicate.CustomRequirement{
			Name: "non-negative",
			Fn: func(matched []*model.Snapshot, _ predicate.FrameView) []ident.ObjectID {
				var offenders []ident.ObjectID
				for _, s := range matched {
					v, ok := s.Attributes["value"]
					if !ok {
						continue
					}
					d, err := v.DoubleValue()
					if err == nil && d < 0 {
						offenders = append(offenders, s.ObjectID)
					}
				}
				return offenders
			},
		},
	}

	m := memory.New(mm, alloc, memory.WithLogger(logger), memory.WithConstraints(nonNegative))

	f1 := m.CreateFrame()
	upstream, err := f1.Create("Stock", nil, map[string]variant.Variant{"value": variant.FromDouble(100)}, nil, nil)
	if err != nil {
		return fmt.Errorf("create upstream stock: %w", err)
	}
	downstream, err := f1.Create("Stock", nil, map[string]variant.Variant{"value": variant.FromDouble(0)}, nil, nil)
	if err != nil {
		return fmt.Errorf("create downstream stock: %w", err)
	}
	structure := model.EdgeStructure(upstream, downstream)
	if _, err := f1.Create("Flow", &structure, nil, nil, nil); err != nil {
		return fmt.Errorf("create flow: %w", err)
	}

	stableF1, err := m.Accept(f1)
	if err != nil {
		return fmt.Errorf("accept first frame: %w", err)
	}

	f2, err := m.DeriveFrame(stableF1.ID())
	if err != nil {
		return fmt.Errorf("derive second frame: %w", err)
	}
	if _, err := f2.Mutate(downstream); err != nil {
		return fmt.Errorf("mutate downstream stock: %w", err)
	}
	if err := f2.SetAttribute(downstream, "value", variant.FromDouble(40)); err != nil {
		return fmt.Errorf("set downstream value: %w", err)
	}
	if _, err := f2.Mutate(upstream); err != nil {
		return fmt.Errorf("mutate upstream stock: %w", err)
	}
	if err := f2.SetAttribute(upstream, "value", variant.FromDouble(60)); err != nil {
		return fmt.Errorf("set upstream value: %w", err)
	}

	stableF2, err := m.Accept(f2)
	if err != nil {
		return fmt.Errorf("accept second frame: %w", err)
	}
	logger.Info("history built", zap.Any("frames", m.FrameIDsSorted()))

	cache, err := record.NewCache(8)
	if err != nil {
		return fmt.Errorf("new record cache: %w", err)
	}
	for _, snap := range stableF2.Snapshots() {
		encoded, err := cache.EncodeFrozen(snap)
		if err != nil {
			return fmt.Errorf("encode %s: %w", snap.ObjectID, err)
		}
		fmt.Printf("%s\n", encoded)
	}

	if err := m.Undo(); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	current, ok := m.CurrentFrame()
	if !ok {
		return fmt.Errorf("no current frame after undo")
	}
	logger.Info("after undo", zap.Uint64("current_frame", uint64(current.ID())))

	view := graphview.New(current)
	if err := view.WriteDOT(os.Stdout); err != nil {
		return fmt.Errorf("write dot: %w", err)
	}
	return nil
}
