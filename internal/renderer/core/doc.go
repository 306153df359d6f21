// Package core provides the value types shared by the renderer packages:
// colors, text attributes, styles, screen positions and cells.
//
// The grid engine treats a Style as an opaque, comparable value. Only the
// output backends interpret its fields.
package core
