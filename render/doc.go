// SPDX-License-Identifier: MIT

// Package render produces read-only views of a core.Model: a text tree
// rooted at the source (ASCII) and a GeoJSON FeatureCollection for map
// tools (GeoJSON). Neither mutates the model.
package render
