package main

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/geom"
	"github.com/gogpu/sketch/text"
)

// loadFont loads the scene font into c.
func loadFont(c *sketch.Context, s *Scene) (*text.Font, error) {
	data := goregular.TTF
	if s.Font != "" {
		b, err := os.ReadFile(s.Font)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		data = b
	}
	opts := []text.FontOption{text.WithSize(s.FontSize)}
	if s.SDF {
		opts = append(opts, text.WithSDF(0))
	}
	return c.NewFont(data, opts...)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// drawFrame draws every shape of s for the given frame number and flushes.
func drawFrame(c *sketch.Context, s *Scene, font *text.Font, frame int) error {
	bg := sketch.Color(sketch.Transparent)
	if s.Background != nil && !s.Background.None {
		bg = s.Background.Color
	}
	if err := c.Clear(bg); err != nil {
		return err
	}
	c.SetFont(font)
	for i := range s.Shapes {
		drawShape(c, &s.Shapes[i], frame)
	}
	return c.FlushAll()
}

func drawShape(c *sketch.Context, sh *Shape, frame int) {
	c.Push()
	defer c.Pop()

	if sh.Fill != nil {
		if sh.Fill.None {
			c.NoFill()
		} else {
			c.SetFill(sh.Fill.Color)
			c.SetTint(sh.Fill.Color)
		}
	}
	if sh.Stroke != nil {
		if sh.Stroke.None {
			c.NoStroke()
		} else {
			c.SetStroke(sh.Stroke.Color)
		}
	}
	if sh.Weight != nil {
		c.SetWeight(*sh.Weight)
	}

	off := geom.V(sh.Move[0], sh.Move[1]).Mul(float64(frame))
	x, y := sh.X+off.X, sh.Y+off.Y
	pts := sh.points(off)

	switch sh.Type {
	case "point":
		c.Point(x, y)
	case "line":
		c.Line(x, y, sh.X2+off.X, sh.Y2+off.Y)
	case "triangle":
		c.Triangle(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
	case "quad":
		c.Quad(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
	case "rect":
		c.Rect(x, y, sh.W, sh.H)
	case "square":
		c.Square(x, y, sh.W)
	case "rrect":
		c.RoundedRect(x, y, sh.W, sh.H, sh.R)
	case "circle":
		c.Circle(x, y, sh.R)
	case "ellipse":
		c.Ellipse(x, y, sh.RX, sh.RY)
	case "arc":
		mode := sketch.OpenPie
		if sh.Chord {
			mode = sketch.OpenChord
		}
		start := radians(sh.Start + sh.Spin*float64(frame))
		c.Arc(x, y, sh.RX, sh.RY, start, radians(sh.Sweep), mode)
	case "polygon":
		c.Polygon(pts...)
	case "bezier":
		c.Bezier(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
	case "text":
		c.SetTextSize(sh.Size)
		c.SetShaping(sh.Shape)
		c.Text(x, y, sh.Text)
	}
}
