package render

import "github.com/lixenwraith/regionview/terminal"

// Cell aliases terminal.Cell so the buffer flushes without conversion
type Cell = terminal.Cell
type Attr = terminal.Attr
