package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/geom"
)

// Scene is a YAML description of what to draw on every frame.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background *Paint  `yaml:"background"`
	Quality    string  `yaml:"quality"`
	Font       string  `yaml:"font"`      // TTF path; empty uses Go Regular
	FontSize   float64 `yaml:"font_size"` // base raster size, default 32
	SDF        bool    `yaml:"sdf"`       // rasterize glyphs as distance fields
	Shapes     []Shape `yaml:"shapes"`
}

// Shape is one draw call. Fields not used by Type are ignored.
type Shape struct {
	Type string `yaml:"type"`

	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
	W  float64 `yaml:"w"`
	H  float64 `yaml:"h"`
	R  float64 `yaml:"r"`
	RX float64 `yaml:"rx"`
	RY float64 `yaml:"ry"`

	// Start and Sweep are arc angles in degrees, clockwise from +X.
	Start float64 `yaml:"start"`
	Sweep float64 `yaml:"sweep"`
	Chord bool    `yaml:"chord"`

	Points [][2]float64 `yaml:"points"`
	Text   string       `yaml:"text"`
	Size   float64      `yaml:"size"`
	Shape  bool         `yaml:"shape"` // use the HarfBuzz shaper for text

	Fill   *Paint   `yaml:"fill"`
	Stroke *Paint   `yaml:"stroke"`
	Weight *float64 `yaml:"weight"`

	// Move offsets the shape by this many pixels per frame and Spin
	// rotates arcs by this many degrees per frame.
	Move [2]float64 `yaml:"move"`
	Spin float64    `yaml:"spin"`
}

// Paint is a color or "none".
type Paint struct {
	None  bool
	Color sketch.RGBA
}

// UnmarshalYAML implements yaml.Unmarshaler for Paint.
func (p *Paint) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "none" {
		*p = Paint{None: true}
		return nil
	}
	c, err := sketch.Hex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = Paint{Color: c}
	return nil
}

var errUnknownShape = errors.New("unknown shape type")

// shapeTypes lists the accepted Shape.Type values.
var shapeTypes = map[string]bool{
	"point": true, "line": true, "triangle": true, "quad": true,
	"rect": true, "square": true, "rrect": true, "circle": true,
	"ellipse": true, "arc": true, "polygon": true, "bezier": true,
	"text": true,
}

// fixedPoints is the point count of shapes given by Points.
var fixedPoints = map[string]int{"triangle": 3, "quad": 4, "bezier": 4}

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return ParseScene(data)
}

// ParseScene decodes and validates a YAML scene and applies defaults.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if s.Width == 0 {
		s.Width = 800
	}
	if s.Height == 0 {
		s.Height = 600
	}
	if s.FontSize == 0 {
		s.FontSize = 32
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("invalid scene size %dx%d", s.Width, s.Height)
	}
	if s.Quality != "" {
		if _, err := sketch.ParseLevel(s.Quality); err != nil {
			return nil, err
		}
	}
	for i, sh := range s.Shapes {
		if !shapeTypes[sh.Type] {
			return nil, fmt.Errorf("shape %d: %w %q", i, errUnknownShape, sh.Type)
		}
		if sh.Type == "polygon" && len(sh.Points) < 3 {
			return nil, fmt.Errorf("shape %d: polygon needs at least 3 points", i)
		}
		if n, ok := fixedPoints[sh.Type]; ok && len(sh.Points) != n {
			return nil, fmt.Errorf("shape %d: %s needs %d points", i, sh.Type, n)
		}
	}
	return &s, nil
}

// points returns the shape's points offset by off.
func (sh *Shape) points(off geom.Vec2) []geom.Vec2 {
	pts := make([]geom.Vec2, len(sh.Points))
	for i, p := range sh.Points {
		pts[i] = geom.V(p[0], p[1]).Add(off)
	}
	return pts
}
