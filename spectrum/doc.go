// Package spectrum implements the spectrum visualizer core: dreamers placed in
// a 3D space derived from three opposing axis pairs, an orbiting camera with
// drag momentum and view snapping, octant classification, sphere and hull
// zones, and hit-testing of the projected result.
//
// The engine never draws. Each frame it produces a depth-sorted Frame that a
// host Renderer consumes; label boxes reported back by the renderer are cached
// and take priority over dots on the next HitTest.
//
// An Engine is single-threaded: the host calls Tick once per animation frame
// and routes input through Drag, EndDrag, ZoomBy, SnapToView and HitTest from
// the same goroutine.
package spectrum
