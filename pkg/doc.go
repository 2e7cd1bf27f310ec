// Package pkg provides the core libraries for the Dashgrid layout engine.
//
// # Overview
//
// Dashgrid arranges chart images on a responsive column grid: it generates
// default layouts for a set of charts, repairs user-edited layouts, detects
// arrangements not worth keeping, and persists everything per breakpoint
// tier. The pkg directory is organized into four main areas:
//
//  1. [grid], [layout], [breakpoint] - Domain logic (occupancy grid,
//     generation, normalization, degeneracy, patching, the tier table)
//  2. [store] - Persistence backends (memory, file, Redis, MongoDB)
//  3. [board] - Coordination (async loads, debounced saves, tier crossings)
//  4. [api] - The HTTP surface over the engine
//
// # Architecture
//
// The typical data flow through Dashgrid:
//
//	Chart item ids (one category)
//	         ↓
//	    [layout] package (generate defaults / patch saved state)
//	         ↓
//	    [board] package (frontend pushes, debounced persistence)
//	         ↓
//	    [store] package (whole-state JSON per category)
//
// # Quick Start
//
// Generate default layouts and keep them reconciled:
//
//	import (
//	    "context"
//	    "github.com/dashgrid/dashgrid/pkg/board"
//	    "github.com/dashgrid/dashgrid/pkg/store"
//	)
//
//	b := board.New(board.Config{Store: store.NewMemoryStore()})
//	defer b.Close()
//	_ = b.ShowCategory(context.Background(), "ventas", []string{
//	    "ventas-resumen_mensual.png",
//	    "ventas-top_productos.png",
//	})
//
// Supporting packages: [errors] for coded errors shared by CLI and API,
// [observability] for optional instrumentation hooks, and [buildinfo] for
// ldflags-injected version data.
package pkg
