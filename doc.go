// Package platter is a scrolling one-page layout for [Ebitengine] whose
// discs can be picked up, thrown and left to coast to rest.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := platter.NewScene(800, 600)
//	hero := platter.NewSection("home", 800, 600, platter.Color{R: 1, G: 0.95, B: 0.9, A: 1})
//	scene.Root().AddChild(hero)
//
//	disc := platter.NewDisc("sun", 120, platter.Color{R: 1, G: 0.6, B: 0.2, A: 1})
//	disc.SetPercentPosition(38, 30)
//	hero.AddChild(disc)
//
//	platter.Run(scene, platter.RunConfig{Title: "Platter", Width: 800, Height: 600})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Dragging
//
// Every [Element] with Draggable set follows the pointer while pressed. On
// the first drag an element laid out in percentages is measured and pinned
// to pixels; it never goes back. The element picked up is raised above
// everything picked up before it by a [ZArbiter].
//
// Releasing faster than one pixel per 16 ms on either axis starts a coast:
// velocity decays by a factor of 0.92 per frame until both components drop
// below 0.3. Grabbing the element again stops the coast before the new drag
// begins. Tune these with [Scene.SetMomentum].
//
// Lifecycle hooks are registered on the scene: [Scene.OnDragStart],
// [Scene.OnDrag], [Scene.OnDragEnd] and [Scene.OnSettle].
//
// # Page
//
// Sections fade and slide in as they scroll into view. A fixed nav bar
// ([Scene.SetNav]) gains a shadow once the page scrolls, nav links
// ([Scene.LinkTo]) scroll smoothly to their anchors, and a slide-out
// [Sidebar] serves small screens. Labels are set in Go Regular unless
// [Scene.SetFont] is given a face from [LoadFont].
//
// # Testing
//
// Pointer input can be injected with [Scene.InjectPress], [Scene.InjectFlick]
// and friends, or replayed from a JSON script with [LoadScript]. A
// [ManualClock] makes velocity sampling deterministic.
//
// [Ebitengine]: https://ebitengine.org
package platter
