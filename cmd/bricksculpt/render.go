package main

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

// palette maps common brick colour names; anything else gets a stable
// colour from its name.
var palette = map[string]color.RGBA{
	"Red":        {0xc9, 0x1a, 0x09, 0xff},
	"Bright Red": {0xe1, 0x1b, 0x1b, 0xff},
	"Blue":       {0x00, 0x55, 0xbf, 0xff},
	"Green":      {0x23, 0x78, 0x41, 0xff},
	"Lime":       {0xbb, 0xe9, 0x0b, 0xff},
	"Yellow":     {0xf2, 0xcd, 0x37, 0xff},
	"White":      {0xf2, 0xf3, 0xf2, 0xff},
	"Black":      {0x1b, 0x2a, 0x34, 0xff},
	"Gray":       {0xa0, 0xa5, 0xa9, 0xff},
}

func materialColor(name string) color.RGBA {
	if c, ok := palette[name]; ok {
		return c
	}
	if name == "" {
		return palette["Gray"]
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()
	return color.RGBA{uint8(v), uint8(v >> 8), uint8(v >> 16), 0xff}
}

// extent is the inclusive key range covered by the grid.
type extent struct {
	min, max bricks.Key
}

func gridExtent(g *bricks.Grid) (extent, bool) {
	keys := g.Keys()
	if len(keys) == 0 {
		return extent{}, false
	}
	e := extent{min: keys[0], max: keys[0]}
	for _, k := range keys[1:] {
		e.min = bricks.K(min(e.min.X, k.X), min(e.min.Y, k.Y), min(e.min.Z, k.Z))
		e.max = bricks.K(max(e.max.X, k.X), max(e.max.Y, k.Y), max(e.max.Z, k.Z))
	}
	return e, true
}

var (
	layerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	shellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderLayers draws every z-layer as a top-down character map, highest
// layer first. Brick cells are filled in their material colour; hidden
// shell cells are dotted.
func renderLayers(g *bricks.Grid) string {
	e, ok := gridExtent(g)
	if !ok {
		return "(empty grid)\n"
	}
	var panels []string
	for z := e.max.Z; z >= e.min.Z; z-- {
		var b strings.Builder
		b.WriteString(layerTitle.Render(fmt.Sprintf("z=%d", z)))
		for y := e.max.Y; y >= e.min.Y; y-- {
			b.WriteByte('\n')
			for x := e.min.X; x <= e.max.X; x++ {
				b.WriteString(cellGlyph(g, bricks.K(x, y, z)))
			}
		}
		panels = append(panels, panelStyle.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...) + "\n"
}

func cellGlyph(g *bricks.Grid, k bricks.Key) string {
	c := g.Cell(k)
	switch {
	case c == nil || (!c.Draw && c.Val <= 0):
		return "  "
	case !c.Draw:
		return shellStyle.Render("··")
	}
	root, _ := g.Root(k)
	glyph := "██"
	if root == k {
		glyph = "▓▓"
	}
	mat := g.Cell(root).MatName
	return lipgloss.NewStyle().Foreground(hexColor(materialColor(mat))).Render(glyph)
}

const (
	pngCell    = 24.0
	pngPadding = 16.0
	pngTitle   = 20.0
)

// exportPNG writes the layers side by side, lowest layer on the left, with
// brick outlines and labels.
func exportPNG(path string, g *bricks.Grid) error {
	e, ok := gridExtent(g)
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	cols := float64(e.max.X - e.min.X + 1)
	rows := float64(e.max.Y - e.min.Y + 1)
	layers := float64(e.max.Z - e.min.Z + 1)

	panelW := cols*pngCell + pngPadding
	width := int(layers*panelW + pngPadding)
	height := int(rows*pngCell + pngTitle + 2*pngPadding)

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for z := e.min.Z; z <= e.max.Z; z++ {
		ox := pngPadding + float64(z-e.min.Z)*panelW
		oy := pngPadding + pngTitle

		dc.SetColor(color.Black)
		dc.DrawString(fmt.Sprintf("z=%d", z), ox, pngPadding+12)

		// screen y grows downwards, grid y upwards
		cellXY := func(k bricks.Key) (float64, float64) {
			return ox + float64(k.X-e.min.X)*pngCell, oy + float64(e.max.Y-k.Y)*pngCell
		}
		for _, root := range g.Layer(z) {
			c := g.Cell(root)
			x0, _ := cellXY(root)
			_, y0 := cellXY(root.Add(0, c.Size[1]-1, 0))
			w := float64(c.Size[0]) * pngCell
			h := float64(c.Size[1]) * pngCell

			dc.DrawRectangle(x0+1, y0+1, w-2, h-2)
			dc.SetColor(materialColor(c.MatName))
			dc.FillPreserve()
			dc.SetColor(color.Black)
			dc.SetLineWidth(1)
			dc.Stroke()
			if c.Size[2] > 1 {
				dc.DrawStringAnchored(fmt.Sprintf("%d", c.Size[2]), x0+w/2, y0+h/2, 0.5, 0.5)
			}
		}
		for _, k := range g.Keys() {
			if k.Z != z {
				continue
			}
			if c := g.Cell(k); !c.Draw && c.Val > 0 {
				x, y := cellXY(k)
				dc.SetColor(color.Gray{Y: 0xc0})
				dc.DrawCircle(x+pngCell/2, y+pngCell/2, 2)
				dc.Fill()
			}
		}
	}
	return dc.SavePNG(path)
}
