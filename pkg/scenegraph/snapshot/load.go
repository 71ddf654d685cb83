package snapshot

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// File is the on-disk snapshot layout. Binary resources are base64 encoded.
type File struct {
	Name   string            `json:"name"`
	Images map[string][]byte `json:"images"`
	Fonts  []FontFile        `json:"fonts"`
	Root   map[string]any    `json:"root"`
}

// FontFile is a font face and its file.
type FontFile struct {
	Family string `json:"family"`
	Style  string `json:"style"`
	Weight int    `json:"weight"`
	Data   []byte `json:"data"`
}

// nodeRecord is the loosely typed node shape decoded from Root. Enum values
// are accepted in any case style ("BOOLEAN_OPERATION", "booleanOperation").
type nodeRecord struct {
	ID       string   `mapstructure:"id"`
	Name     string   `mapstructure:"name"`
	Type     string   `mapstructure:"type"`
	Visible  *bool    `mapstructure:"visible"`
	X        float64  `mapstructure:"x"`
	Y        float64  `mapstructure:"y"`
	Width    float64  `mapstructure:"width"`
	Height   float64  `mapstructure:"height"`
	Rotation float64  `mapstructure:"rotation"`
	Opacity  *float64 `mapstructure:"opacity"`

	BlendMode string `mapstructure:"blendMode"`
	Flatten   bool   `mapstructure:"flatten"`

	Fills        []paintRecord  `mapstructure:"fills"`
	Strokes      []paintRecord  `mapstructure:"strokes"`
	StrokeWeight float64        `mapstructure:"strokeWeight"`
	StrokeAlign  string         `mapstructure:"strokeAlign"`
	Effects      []effectRecord `mapstructure:"effects"`

	CornerRadius float64    `mapstructure:"cornerRadius"`
	CornerRadii  []float64  `mapstructure:"cornerRadii"`
	ClipsContent bool       `mapstructure:"clipsContent"`
	PointCount   int        `mapstructure:"pointCount"`
	InnerRadius  float64    `mapstructure:"innerRadius"`
	Arc          *arcRecord `mapstructure:"arcData"`
	Paths        []struct {
		WindingRule string `mapstructure:"windingRule"`
		Data        string `mapstructure:"data"`
	} `mapstructure:"vectorPaths"`

	LayoutMode             string  `mapstructure:"layoutMode"`
	ItemSpacing            float64 `mapstructure:"itemSpacing"`
	PaddingTop             float64 `mapstructure:"paddingTop"`
	PaddingRight           float64 `mapstructure:"paddingRight"`
	PaddingBottom          float64 `mapstructure:"paddingBottom"`
	PaddingLeft            float64 `mapstructure:"paddingLeft"`
	PrimaryAxisAlignItems  string  `mapstructure:"primaryAxisAlignItems"`
	CounterAxisAlignItems  string  `mapstructure:"counterAxisAlignItems"`
	LayoutPositioning      string  `mapstructure:"layoutPositioning"`
	LayoutSizingHorizontal string  `mapstructure:"layoutSizingHorizontal"`
	LayoutSizingVertical   string  `mapstructure:"layoutSizingVertical"`
	Constraints            struct {
		Horizontal string `mapstructure:"horizontal"`
		Vertical   string `mapstructure:"vertical"`
	} `mapstructure:"constraints"`

	Characters          string          `mapstructure:"characters"`
	FontName            fontRecord      `mapstructure:"fontName"`
	FontSize            float64         `mapstructure:"fontSize"`
	Segments            []segmentRecord `mapstructure:"segments"`
	TextAlignHorizontal string          `mapstructure:"textAlignHorizontal"`
	TextAlignVertical   string          `mapstructure:"textAlignVertical"`
	TextAutoResize      string          `mapstructure:"textAutoResize"`

	Children []nodeRecord `mapstructure:"children"`
}

type paintRecord struct {
	Type          string       `mapstructure:"type"`
	Visible       *bool        `mapstructure:"visible"`
	Opacity       *float64     `mapstructure:"opacity"`
	BlendMode     string       `mapstructure:"blendMode"`
	Color         colorRecord  `mapstructure:"color"`
	GradientStops []stopRecord `mapstructure:"gradientStops"`
	Transform     []float64    `mapstructure:"transform"`
	ImageHash     string       `mapstructure:"imageHash"`
	ScaleMode     string       `mapstructure:"scaleMode"`
	ScalingFactor float64      `mapstructure:"scalingFactor"`
	Rotation      float64      `mapstructure:"rotation"`
}

type colorRecord struct {
	R float64  `mapstructure:"r"`
	G float64  `mapstructure:"g"`
	B float64  `mapstructure:"b"`
	A *float64 `mapstructure:"a"`
}

type stopRecord struct {
	Position float64     `mapstructure:"position"`
	Color    colorRecord `mapstructure:"color"`
}

type effectRecord struct {
	Type      string      `mapstructure:"type"`
	Visible   *bool       `mapstructure:"visible"`
	Color     colorRecord `mapstructure:"color"`
	Offset    struct {
		X float64 `mapstructure:"x"`
		Y float64 `mapstructure:"y"`
	} `mapstructure:"offset"`
	Radius    float64 `mapstructure:"radius"`
	Spread    float64 `mapstructure:"spread"`
	BlendMode string  `mapstructure:"blendMode"`
}

type arcRecord struct {
	StartingAngle float64 `mapstructure:"startingAngle"`
	EndingAngle   float64 `mapstructure:"endingAngle"`
	InnerRadius   float64 `mapstructure:"innerRadius"`
}

type fontRecord struct {
	Family string `mapstructure:"family"`
	Style  string `mapstructure:"style"`
	Weight int    `mapstructure:"weight"`
}

type segmentRecord struct {
	Start         int           `mapstructure:"start"`
	End           int           `mapstructure:"end"`
	FontName      fontRecord    `mapstructure:"fontName"`
	FontSize      float64       `mapstructure:"fontSize"`
	LetterSpacing measureRecord `mapstructure:"letterSpacing"`
	LineHeight    measureRecord `mapstructure:"lineHeight"`
}

type measureRecord struct {
	Value float64 `mapstructure:"value"`
	Unit  string  `mapstructure:"unit"`
}

// Load reads a snapshot file from fs and builds its scene.
func Load(fs afero.Fs, path string) (*Scene, string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("read snapshot: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	scene, err := Build(f)
	if err != nil {
		return nil, "", fmt.Errorf("snapshot %s: %w", path, err)
	}
	return scene, f.Name, nil
}

// Build builds a scene from a decoded snapshot file.
func Build(f File) (*Scene, error) {
	if f.Root == nil {
		return nil, fmt.Errorf("snapshot has no root node")
	}

	var rec nodeRecord
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(f.Root); err != nil {
		return nil, fmt.Errorf("decode root: %w", err)
	}

	root, err := buildNode(rec)
	if err != nil {
		return nil, err
	}

	scene := NewScene(root)
	for hash, data := range f.Images {
		scene.AddImage(hash, data)
	}
	for _, ff := range f.Fonts {
		scene.AddFont(scenegraph.Font{Family: ff.Family, Style: ff.Style, Weight: ff.Weight}, ff.Data)
	}
	return scene, nil
}

func buildNode(rec nodeRecord) (scenegraph.Node, error) {
	kind, err := parseEnum(kindNames, rec.Type)
	if err != nil {
		return nil, fmt.Errorf("node %s: type: %w", rec.ID, err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("node of type %s has no id", rec.Type)
	}

	base := newBase(rec.ID, rec.Name, kind, rec.Width, rec.Height)
	base.Matrix = scenegraph.Translate(rec.X, rec.Y).Multiply(scenegraph.Rotate(rec.Rotation * math.Pi / 180))
	base.Flatten = rec.Flatten
	if rec.Visible != nil {
		base.Hidden = !*rec.Visible
	}
	if rec.Opacity != nil {
		base.Alpha = *rec.Opacity
	}
	if rec.BlendMode != "" {
		if base.Blend, err = parseEnum(blendNames, rec.BlendMode); err != nil {
			return nil, fmt.Errorf("node %s: blendMode: %w", rec.ID, err)
		}
	}
	if err := applyLayout(&base, rec); err != nil {
		return nil, fmt.Errorf("node %s: %w", rec.ID, err)
	}

	geom, err := buildGeometry(rec)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", rec.ID, err)
	}

	switch kind {
	case scenegraph.KindFrame, scenegraph.KindComponent, scenegraph.KindInstance:
		f := &Frame{Base: base, Geometry: geom, Radii: radii(rec), Clip: rec.ClipsContent}
		if f.Auto, err = buildAutoLayout(rec); err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.ID, err)
		}
		children, err := buildChildren(rec)
		if err != nil {
			return nil, err
		}
		f.Append(children...)
		return f, nil

	case scenegraph.KindGroup:
		g := &Group{Base: base, EffectList: geom.EffectList}
		children, err := buildChildren(rec)
		if err != nil {
			return nil, err
		}
		g.Append(children...)
		return g, nil

	case scenegraph.KindText:
		return buildText(base, geom, rec)

	case scenegraph.KindSlice:
		return &Slice{Base: base}, nil

	default:
		s := NewShape(rec.ID, rec.Name, kind, rec.Width, rec.Height)
		if rec.BlendMode == "" {
			base.Blend = s.Blend
		}
		s.Base = base
		s.Geometry = geom
		s.Radii = radii(rec)
		if rec.Arc != nil {
			s.Arc = scenegraph.Arc{StartingAngle: rec.Arc.StartingAngle, EndingAngle: rec.Arc.EndingAngle, InnerRadius: rec.Arc.InnerRadius}
		}
		if rec.PointCount > 0 {
			s.Points = rec.PointCount
		}
		if rec.InnerRadius > 0 {
			s.Inner = rec.InnerRadius
		}
		for _, p := range rec.Paths {
			s.Paths = append(s.Paths, scenegraph.VectorPath{WindingRule: p.WindingRule, Data: p.Data})
		}
		return s, nil
	}
}

func buildChildren(rec nodeRecord) ([]scenegraph.Node, error) {
	children := make([]scenegraph.Node, 0, len(rec.Children))
	for _, c := range rec.Children {
		child, err := buildNode(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func buildText(base Base, geom Geometry, rec nodeRecord) (*Text, error) {
	if rec.BlendMode == "" {
		base.Blend = scenegraph.BlendNormal
	}
	t := &Text{Base: base, Geometry: geom, Content: rec.Characters}

	var err error
	if rec.TextAlignHorizontal != "" {
		if t.HAlign, err = parseEnum(hAlignNames, rec.TextAlignHorizontal); err != nil {
			return nil, fmt.Errorf("node %s: textAlignHorizontal: %w", rec.ID, err)
		}
	}
	if rec.TextAlignVertical != "" {
		if t.VAlign, err = parseEnum(vAlignNames, rec.TextAlignVertical); err != nil {
			return nil, fmt.Errorf("node %s: textAlignVertical: %w", rec.ID, err)
		}
	}
	t.Resize = scenegraph.AutoResizeWidthAndHeight
	if rec.TextAutoResize != "" {
		if t.Resize, err = parseEnum(autoResizeNames, rec.TextAutoResize); err != nil {
			return nil, fmt.Errorf("node %s: textAutoResize: %w", rec.ID, err)
		}
	}

	if len(rec.Segments) == 0 {
		t.Runs = []scenegraph.TextSegment{{
			End:      len([]rune(rec.Characters)),
			Font:     scenegraph.Font(rec.FontName),
			FontSize: rec.FontSize,
		}}
		return t, nil
	}
	for _, s := range rec.Segments {
		seg := scenegraph.TextSegment{
			Start:    s.Start,
			End:      s.End,
			Font:     scenegraph.Font(s.FontName),
			FontSize: s.FontSize,
		}
		if seg.LetterSpacing, err = buildMeasure(s.LetterSpacing); err != nil {
			return nil, fmt.Errorf("node %s: letterSpacing: %w", rec.ID, err)
		}
		if seg.LineHeight, err = buildMeasure(s.LineHeight); err != nil {
			return nil, fmt.Errorf("node %s: lineHeight: %w", rec.ID, err)
		}
		t.Runs = append(t.Runs, seg)
	}
	return t, nil
}

func buildMeasure(m measureRecord) (scenegraph.Measure, error) {
	if m.Unit == "" {
		return scenegraph.Measure{Value: m.Value}, nil
	}
	unit, err := parseEnum(unitNames, m.Unit)
	if err != nil {
		return scenegraph.Measure{}, err
	}
	return scenegraph.Measure{Value: m.Value, Unit: unit}, nil
}

func buildGeometry(rec nodeRecord) (Geometry, error) {
	g := Geometry{Weight: rec.StrokeWeight}
	var err error
	if rec.StrokeAlign != "" {
		if g.Align, err = parseEnum(strokeAlignNames, rec.StrokeAlign); err != nil {
			return g, fmt.Errorf("strokeAlign: %w", err)
		}
	}
	for _, p := range rec.Fills {
		paint, err := buildPaint(p)
		if err != nil {
			return g, fmt.Errorf("fills: %w", err)
		}
		g.FillPaints = append(g.FillPaints, paint)
	}
	for _, p := range rec.Strokes {
		paint, err := buildPaint(p)
		if err != nil {
			return g, fmt.Errorf("strokes: %w", err)
		}
		g.StrokePaints = append(g.StrokePaints, paint)
	}
	for _, e := range rec.Effects {
		effect, err := buildEffect(e)
		if err != nil {
			return g, fmt.Errorf("effects: %w", err)
		}
		g.EffectList = append(g.EffectList, effect)
	}
	return g, nil
}

func buildPaint(rec paintRecord) (scenegraph.Paint, error) {
	typ, err := parseEnum(paintTypeNames, rec.Type)
	if err != nil {
		return scenegraph.Paint{}, err
	}
	p := scenegraph.Paint{
		Type:          typ,
		Visible:       rec.Visible == nil || *rec.Visible,
		Opacity:       1,
		BlendMode:     scenegraph.BlendNormal,
		Color:         buildColor(rec.Color),
		ImageHash:     rec.ImageHash,
		ScalingFactor: rec.ScalingFactor,
		Rotation:      rec.Rotation,
	}
	if rec.Opacity != nil {
		p.Opacity = *rec.Opacity
	}
	if rec.BlendMode != "" {
		if p.BlendMode, err = parseEnum(blendNames, rec.BlendMode); err != nil {
			return p, err
		}
	}
	for _, s := range rec.GradientStops {
		p.GradientStops = append(p.GradientStops, scenegraph.ColorStop{Position: s.Position, Color: buildColor(s.Color)})
	}
	m, err := buildAffine(rec.Transform)
	if err != nil {
		return p, err
	}
	if typ.IsGradient() {
		p.GradientTransform = m
	} else if typ == scenegraph.PaintImage || typ == scenegraph.PaintVideo {
		p.ImageTransform = m
		if rec.ScaleMode != "" {
			if p.ScaleMode, err = parseEnum(scaleModeNames, rec.ScaleMode); err != nil {
				return p, err
			}
		}
		if p.ScalingFactor == 0 {
			p.ScalingFactor = 1
		}
	}
	return p, nil
}

func buildEffect(rec effectRecord) (scenegraph.Effect, error) {
	typ, err := parseEnum(effectNames, rec.Type)
	if err != nil {
		return scenegraph.Effect{}, err
	}
	e := scenegraph.Effect{
		Type:      typ,
		Visible:   rec.Visible == nil || *rec.Visible,
		Color:     buildColor(rec.Color),
		Offset:    scenegraph.Vec2{X: rec.Offset.X, Y: rec.Offset.Y},
		Radius:    rec.Radius,
		Spread:    rec.Spread,
		BlendMode: scenegraph.BlendNormal,
	}
	if rec.BlendMode != "" {
		if e.BlendMode, err = parseEnum(blendNames, rec.BlendMode); err != nil {
			return e, err
		}
	}
	return e, nil
}

// buildAffine reads [a b c d tx ty]. An empty transform is the identity.
func buildAffine(v []float64) (scenegraph.Affine, error) {
	switch len(v) {
	case 0:
		return scenegraph.Identity, nil
	case 6:
		return scenegraph.Affine{v[0], v[1], v[2], v[3], v[4], v[5]}, nil
	default:
		return scenegraph.Affine{}, fmt.Errorf("transform needs 6 values, got %d", len(v))
	}
}

func buildColor(c colorRecord) scenegraph.Color {
	a := 1.0
	if c.A != nil {
		a = *c.A
	}
	return scenegraph.Color{R: c.R, G: c.G, B: c.B, A: a}
}

func radii(rec nodeRecord) [4]float64 {
	if len(rec.CornerRadii) == 4 {
		return [4]float64{rec.CornerRadii[0], rec.CornerRadii[1], rec.CornerRadii[2], rec.CornerRadii[3]}
	}
	r := rec.CornerRadius
	return [4]float64{r, r, r, r}
}

func applyLayout(b *Base, rec nodeRecord) error {
	var err error
	if rec.Constraints.Horizontal != "" {
		if b.Constrain.Horizontal, err = parseEnum(constraintNames, rec.Constraints.Horizontal); err != nil {
			return fmt.Errorf("constraints: %w", err)
		}
	}
	if rec.Constraints.Vertical != "" {
		if b.Constrain.Vertical, err = parseEnum(constraintNames, rec.Constraints.Vertical); err != nil {
			return fmt.Errorf("constraints: %w", err)
		}
	}
	if rec.LayoutPositioning != "" {
		if b.Positioning, err = parseEnum(positioningNames, rec.LayoutPositioning); err != nil {
			return fmt.Errorf("layoutPositioning: %w", err)
		}
	}
	if rec.LayoutSizingHorizontal != "" {
		if b.SizingH, err = parseEnum(sizingNames, rec.LayoutSizingHorizontal); err != nil {
			return fmt.Errorf("layoutSizingHorizontal: %w", err)
		}
	}
	if rec.LayoutSizingVertical != "" {
		if b.SizingV, err = parseEnum(sizingNames, rec.LayoutSizingVertical); err != nil {
			return fmt.Errorf("layoutSizingVertical: %w", err)
		}
	}
	return nil
}

func buildAutoLayout(rec nodeRecord) (scenegraph.AutoLayout, error) {
	al := scenegraph.AutoLayout{
		ItemSpacing:  rec.ItemSpacing,
		PaddingTop:   rec.PaddingTop,
		PaddingRight: rec.PaddingRight,
		PaddingBot:   rec.PaddingBottom,
		PaddingLeft:  rec.PaddingLeft,
	}
	var err error
	if rec.LayoutMode != "" {
		if al.Mode, err = parseEnum(layoutModeNames, rec.LayoutMode); err != nil {
			return al, fmt.Errorf("layoutMode: %w", err)
		}
	}
	if rec.PrimaryAxisAlignItems != "" {
		if al.PrimaryAlign, err = parseEnum(axisAlignNames, rec.PrimaryAxisAlignItems); err != nil {
			return al, fmt.Errorf("primaryAxisAlignItems: %w", err)
		}
	}
	if rec.CounterAxisAlignItems != "" {
		if al.CounterAlign, err = parseEnum(axisAlignNames, rec.CounterAxisAlignItems); err != nil {
			return al, fmt.Errorf("counterAxisAlignItems: %w", err)
		}
	}
	return al, nil
}

func parseEnum[T any](names map[string]T, s string) (T, error) {
	v, ok := names[strcase.ToScreamingSnake(s)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown value %q", s)
	}
	return v, nil
}

var kindNames = func() map[string]scenegraph.NodeKind {
	m := make(map[string]scenegraph.NodeKind, scenegraph.NumNodeKinds)
	for k := 0; k < scenegraph.NumNodeKinds; k++ {
		m[scenegraph.NodeKind(k).String()] = scenegraph.NodeKind(k)
	}
	return m
}()

var blendNames = map[string]scenegraph.BlendMode{
	"PASS_THROUGH": scenegraph.BlendPassThrough,
	"NORMAL":       scenegraph.BlendNormal,
	"DARKEN":       scenegraph.BlendDarken,
	"MULTIPLY":     scenegraph.BlendMultiply,
	"LINEAR_BURN":  scenegraph.BlendLinearBurn,
	"COLOR_BURN":   scenegraph.BlendColorBurn,
	"LIGHTEN":      scenegraph.BlendLighten,
	"SCREEN":       scenegraph.BlendScreen,
	"LINEAR_DODGE": scenegraph.BlendLinearDodge,
	"COLOR_DODGE":  scenegraph.BlendColorDodge,
	"OVERLAY":      scenegraph.BlendOverlay,
	"SOFT_LIGHT":   scenegraph.BlendSoftLight,
	"HARD_LIGHT":   scenegraph.BlendHardLight,
	"DIFFERENCE":   scenegraph.BlendDifference,
	"EXCLUSION":    scenegraph.BlendExclusion,
	"HUE":          scenegraph.BlendHue,
	"SATURATION":   scenegraph.BlendSaturation,
	"COLOR":        scenegraph.BlendColor,
	"LUMINOSITY":   scenegraph.BlendLuminosity,
}

var paintTypeNames = map[string]scenegraph.PaintType{
	"SOLID":            scenegraph.PaintSolid,
	"GRADIENT_LINEAR":  scenegraph.PaintGradientLinear,
	"GRADIENT_RADIAL":  scenegraph.PaintGradientRadial,
	"GRADIENT_ANGULAR": scenegraph.PaintGradientAngular,
	"GRADIENT_DIAMOND": scenegraph.PaintGradientDiamond,
	"IMAGE":            scenegraph.PaintImage,
	"VIDEO":            scenegraph.PaintVideo,
}

var scaleModeNames = map[string]scenegraph.ScaleMode{
	"FILL": scenegraph.ScaleFill,
	"FIT":  scenegraph.ScaleFit,
	"CROP": scenegraph.ScaleCrop,
	"TILE": scenegraph.ScaleTile,
}

var effectNames = map[string]scenegraph.EffectType{
	"DROP_SHADOW":     scenegraph.EffectDropShadow,
	"INNER_SHADOW":    scenegraph.EffectInnerShadow,
	"LAYER_BLUR":      scenegraph.EffectLayerBlur,
	"BACKGROUND_BLUR": scenegraph.EffectBackgroundBlur,
}

var strokeAlignNames = map[string]scenegraph.StrokeAlign{
	"INSIDE":  scenegraph.StrokeInside,
	"CENTER":  scenegraph.StrokeCenter,
	"OUTSIDE": scenegraph.StrokeOutside,
}

var unitNames = map[string]scenegraph.Unit{
	"AUTO":    scenegraph.UnitAuto,
	"PIXELS":  scenegraph.UnitPixels,
	"PERCENT": scenegraph.UnitPercent,
}

var hAlignNames = map[string]scenegraph.TextAlignHorizontal{
	"LEFT":      scenegraph.TextAlignLeft,
	"CENTER":    scenegraph.TextAlignCenter,
	"RIGHT":     scenegraph.TextAlignRight,
	"JUSTIFIED": scenegraph.TextAlignJustified,
}

var vAlignNames = map[string]scenegraph.TextAlignVertical{
	"TOP":    scenegraph.TextAlignTop,
	"CENTER": scenegraph.TextAlignMiddle,
	"MIDDLE": scenegraph.TextAlignMiddle,
	"BOTTOM": scenegraph.TextAlignBottom,
}

var autoResizeNames = map[string]scenegraph.TextAutoResize{
	"NONE":             scenegraph.AutoResizeNone,
	"HEIGHT":           scenegraph.AutoResizeHeight,
	"WIDTH_AND_HEIGHT": scenegraph.AutoResizeWidthAndHeight,
	"TRUNCATE":         scenegraph.AutoResizeTruncate,
}

var constraintNames = map[string]scenegraph.ConstraintType{
	"MIN":     scenegraph.ConstraintMin,
	"MAX":     scenegraph.ConstraintMax,
	"CENTER":  scenegraph.ConstraintCenter,
	"STRETCH": scenegraph.ConstraintStretch,
	"SCALE":   scenegraph.ConstraintScale,
}

var positioningNames = map[string]scenegraph.LayoutPositioning{
	"AUTO":     scenegraph.PositionAuto,
	"ABSOLUTE": scenegraph.PositionAbsolute,
}

var sizingNames = map[string]scenegraph.SizingMode{
	"FIXED": scenegraph.SizingFixed,
	"HUG":   scenegraph.SizingHug,
	"FILL":  scenegraph.SizingFill,
}

var layoutModeNames = map[string]scenegraph.LayoutMode{
	"NONE":       scenegraph.LayoutNone,
	"HORIZONTAL": scenegraph.LayoutHorizontal,
	"VERTICAL":   scenegraph.LayoutVertical,
}

var axisAlignNames = map[string]scenegraph.AxisAlign{
	"MIN":           scenegraph.AlignMin,
	"CENTER":        scenegraph.AlignCenter,
	"MAX":           scenegraph.AlignMax,
	"SPACE_BETWEEN": scenegraph.AlignSpaceBetween,
	"BASELINE":      scenegraph.AlignBaseline,
}
