package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
)

// gridFile is the YAML form of a brick model.
type gridFile struct {
	Source    string      `yaml:"source"`
	BrickType string      `yaml:"brick_type"`
	Step      [3]float32  `yaml:"step,flow"`
	Position  [3]float32  `yaml:"position,flow"`
	Bounds    *boundsFile `yaml:"bounds,omitempty"`
	Bricks    []brickFile `yaml:"bricks"`
	// Shell lists hidden interior cells that a deep delete may expose.
	Shell []string `yaml:"shell,omitempty"`
}

type boundsFile struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

type brickFile struct {
	At       string `yaml:"at"`
	Size     [3]int `yaml:"size,flow"`
	Material string `yaml:"material,omitempty"`
	Custom   bool   `yaml:"custom,omitempty"`
}

func loadGrid(path string, cfg *config.Config) (*bricks.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	g, err := decodeGrid(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func decodeGrid(data []byte, cfg *config.Config) (*bricks.Grid, error) {
	var f gridFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	if f.Source == "" {
		f.Source = cfg.Model.Source
	}
	if f.BrickType == "" {
		f.BrickType = cfg.Model.BrickType
	}
	if f.Step == [3]float32{} {
		f.Step = cfg.Model.Step
	}

	g := bricks.NewGrid(f.Source, f.BrickType, mgl32.Vec3(f.Step))
	g.Transform.Position = mgl32.Vec3(f.Position)
	if f.Bounds != nil {
		lo, err := bricks.ParseKey(f.Bounds.Min)
		if err != nil {
			return nil, fmt.Errorf("bounds.min: %w", err)
		}
		hi, err := bricks.ParseKey(f.Bounds.Max)
		if err != nil {
			return nil, fmt.Errorf("bounds.max: %w", err)
		}
		g.Bounds = &bricks.Bounds{Min: lo, Max: hi}
	}

	for i, b := range f.Bricks {
		k, err := bricks.ParseKey(b.At)
		if err != nil {
			return nil, fmt.Errorf("bricks[%d]: %w", i, err)
		}
		size := b.Size
		if size == [3]int{} {
			size = bricks.UnitSize
		}
		if err := g.AddBrick(k, size, b.Material); err != nil {
			return nil, fmt.Errorf("bricks[%d]: %w", i, err)
		}
		if b.Custom {
			for _, kk := range g.KeysInBrick(k, size) {
				g.Cell(kk).CustomMat = true
			}
		}
	}
	for i, s := range f.Shell {
		k, err := bricks.ParseKey(s)
		if err != nil {
			return nil, fmt.Errorf("shell[%d]: %w", i, err)
		}
		if g.Drawn(k) {
			return nil, fmt.Errorf("shell[%d]: %s is already a brick", i, k)
		}
		c := bricks.NewCell("")
		c.Draw = false
		g.Set(k, c)
	}
	return g, nil
}

func encodeGrid(g *bricks.Grid) ([]byte, error) {
	f := gridFile{
		Source:    g.Source,
		BrickType: g.BrickType,
		Step:      [3]float32(g.Step),
		Position:  [3]float32(g.Transform.Position),
	}
	if g.Bounds != nil {
		f.Bounds = &boundsFile{Min: g.Bounds.Min.String(), Max: g.Bounds.Max.String()}
	}
	for _, k := range g.Keys() {
		c := g.Cell(k)
		switch {
		case c.IsRoot():
			f.Bricks = append(f.Bricks, brickFile{
				At:       k.String(),
				Size:     c.Size,
				Material: c.MatName,
				Custom:   c.CustomMat,
			})
		case !c.Draw && c.Val > 0:
			f.Shell = append(f.Shell, k.String())
		}
	}
	return yaml.Marshal(&f)
}

func saveGrid(path string, g *bricks.Grid) error {
	data, err := encodeGrid(g)
	if err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}
