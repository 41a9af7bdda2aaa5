package main

import (
	"github.com/gdamore/tcell/v2"
)

// Display shows a rendered map full screen, re-rendering to fit when the
// terminal resizes, until an exit key is pressed.
type Display struct {
	screen     tcell.Screen
	monochrome bool
}

// Rows reserved above and below the map for the header and the
// coordinate footer.
const chromeRows = 4

func NewDisplay(monochrome bool) (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return &Display{screen: screen, monochrome: monochrome}, nil
}

func (d *Display) Close() {
	d.screen.Fini()
}

// Run renders and displays until Q, X, Space, Esc or Ctrl-C. The render
// callback is reinvoked with the new map size after every resize.
func (d *Display) Run(header, footer string, render func(cols, rows int) (*RenderResult, error)) error {
	for {
		cols, rows := d.screen.Size()
		mapRows := rows - chromeRows
		if mapRows < 1 {
			mapRows = 1
		}
		result, err := render(cols, mapRows)
		if err != nil {
			return err
		}
		d.draw(header, footer, result)

		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			}
			switch ev.Rune() {
			case 'q', 'Q', 'x', 'X', ' ':
				return nil
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

func (d *Display) draw(header, footer string, result *RenderResult) {
	d.screen.Clear()

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	drawText(d.screen, 0, 0, headerStyle, header)

	for row, line := range result.Lines {
		col := 0
		for _, ch := range line {
			d.screen.SetContent(col, row+2, ch, nil, d.mapStyle(ch))
			col++
		}
	}

	_, rows := d.screen.Size()
	footerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	drawText(d.screen, 0, rows-1, footerStyle, footer)

	d.screen.Show()
}

// mapStyle colors map glyphs: solid fill green, neighbor borders dim,
// label letters yellow. Monochrome mode keeps only the bold fill.
func (d *Display) mapStyle(ch rune) tcell.Style {
	if d.monochrome {
		if ch == glyphFill {
			return tcell.StyleDefault.Bold(true)
		}
		return tcell.StyleDefault
	}
	switch {
	case ch == glyphFill:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case ch == glyphBorder, ch == glyphTexture:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case ch >= 'A' && ch <= 'Z':
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, ch := range text {
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
