// Package director is a motion-graphics compositor built on [Ebitengine]: a
// scene arena of typed elements, a flex-subset layout engine, a timeline of
// scenes joined by transitions, audio-reactive property bindings, and a
// renderer that walks the arena per sampled frame, composites through masks
// and blend modes, and hands frames to the export pipeline or the preview
// server.
//
// # Quick start
//
// [New] builds an Engine over a fresh arena:
//
//	eng := director.New()
//	root := eng.Arena.Add(&elements.Box{Style: layout.Style{...}})
//	eng.Timeline.AddScene(root, 5.0)
//
//	img := eng.RenderFrame(0, scene.Rect{W: 1920, H: 1080})
//	defer eng.ReleaseFrame(img)
//
// # Packages
//
// The arena and element model live in [scene]; concrete element kinds
// (box, text, image, video, lottie, vector, effect, composition) live in
// [elements]; animated values, easing, and audio bindings live in [anim];
// flex layout lives in [layout]; the scene/transition timeline lives in
// [timeline]; compositing lives in [render]; audio mixing and band analysis
// live in [audio]; the streaming exporter lives in [export]; the Lottie
// interpreter lives in [lottie]; the HTTP preview/export surface lives in
// [preview].
//
// Engine itself plays the role of the per-frame Update/Draw loop, generalized
// from a single persistent scene to a timeline sampled at an arbitrary point
// in time — a render call is a pure function of t, not a running game loop.
//
// [Ebitengine]: https://ebitengine.org
package director
