// Package geovu layers a 3D geospatial visualization model over an
// externally hosted WebGL globe renderer: canonical Features (points,
// polylines, polygons, trajectories, relations, events, areas, routes,
// models), Layers that group and cull them, and an Engine that binds
// materials, advances a timeline, and drives the host renderer through
// the narrow capability interfaces in external.go.
//
// geovu never owns a window, a render loop, or GPU resources itself —
// the host embeds it and calls Engine.Tick/MaybeCull from its own frame
// loop, handing back visible DrawHints for the host to actually paint.
package geovu
