// Package darkmode provides a reusable tri-state dark mode controller for
// host UI surfaces.
//
// A Controller binds to a Surface and keeps a persisted preference
// (auto/enabled/disabled) synchronized with the system color-scheme signal.
// It recognizes a toggle gesture on the surface: a quick tap inverts the
// applied scheme as a manual override, while a long press reverts to
// automatic, system-driven mode.
//
// The host environment is abstracted behind small interfaces (Surface,
// Document, PreferenceFeed, Store) so the controller can drive a GTK
// widget, a web view, or a headless surface equally well.
package darkmode
