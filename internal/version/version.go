// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Mouse picking with tooltip, speed sliders, light/dark theme, headless table/JSON
// 0.1.0 - Initial release: animated orrery canvas, starfield, pause
