// Package script runs Lua scenes against a grid.
//
// A scene script is plain Lua with a small set of globals:
//
//	size()                        -- grid width and height
//	set_text(x, y, text[, style]) -- write text at column x of row y
//	clear([style])                -- blank the whole grid
//	mark_all()                    -- repaint everything on the next frame
//	log(msg)                      -- write to the session log
//
// The script's top level runs once when it is loaded. If it defines a
// global function frame(n), the engine calls it for every frame; returning
// false ends the session. Coordinates are zero-based cells and style names
// come from the configured palette.
//
// Only the base, table, string and math libraries are opened.
package script
