// Package theme provides CSS theming for banners.
// Themes are CSS files, bundled or placed in the user's themes directory,
// with an optional YAML sidecar describing the palette for hosts that
// cannot render CSS.
package theme
