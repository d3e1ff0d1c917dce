// Package banner implements the in-app notification banner: a Presenter
// that places a banner on the active surface, and the per-banner animator
// that owns its entrance, dwell, swipe and exit lifecycle.
//
// The package is host agnostic. GTK and terminal backends supply the
// surface, view and loop implementations.
package banner
