// Package display hosts banners on a Wayland desktop using GTK4,
// libadwaita and layer-shell.
//
// A monitor is the surface: Manager resolves it and reports its size plus
// the configured safe area. Each banner is a layer-shell window anchored to
// the top edge (Popup). Effects are rendered as per-banner CSS and
// interpolated with adw.TimedAnimation; dwell timers run on the GLib main
// loop (Loop). ThemeLoader installs the theme stylesheet on the display and
// reapplies user themes when they change.
package display
