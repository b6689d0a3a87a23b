// Package renderer provides the frame-level render context for XConsole.
//
// The renderer composes styled character cells onto a console through a
// display driver:
//
//	┌─────────────────────────────────────────┐
//	│   Window (render context, frame loop)   │
//	├─────────────────────────────────────────┤
//	│  Surface  │  Viewport  │  Page          │
//	├─────────────────────────────────────────┤
//	│           Driver abstraction            │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullDriver (tests)  │
//	└─────────────────────────────────────────┘
//
// Producers write cells into a surface.Surface. A viewport.Viewport selects
// the destination rectangle and the source scroll offset. The page.Page asks
// the driver to copy the selected region into its screen buffer.
//
// Usage:
//
//	drv, _ := backend.NewTerminal()
//	_ = drv.Init()
//	w := renderer.NewWindow(drv, renderer.Options{Input: drv})
//	w.Initialize(80, 25, "demo", nil, false)
//	w.Run(ctx, 10*time.Millisecond, func(frame uint64) error {
//		w.Draw(element)
//		return nil
//	})
package renderer
