package dtif

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// ErrDanglingReference is wrapped by Validate for every record ID that is
// referenced but not present in its collection.
var ErrDanglingReference = errors.New("dangling reference")

var (
	nodeIDPattern  = regexp.MustCompile(`^n\d+$`)
	paintIDPattern = regexp.MustCompile(`^p\d+$`)
	assetIDPattern = regexp.MustCompile(`^a\d+$`)
)

// Validate checks the document's structure: well-formed records, unique IDs
// and referential closure. It does not check rendering semantics.
func (d *Document) Validate() error {
	if err := validation.ValidateStruct(d,
		validation.Field(&d.Version, validation.Required),
		validation.Field(&d.RootNodeID, validation.Required, validation.Match(nodeIDPattern)),
		validation.Field(&d.Nodes, validation.Required),
		validation.Field(&d.Paints),
		validation.Field(&d.Assets),
	); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	if err := d.checkClosure(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}

func (d *Document) checkClosure() error {
	var result *multierror.Error

	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if nodes[n.ID] {
			result = multierror.Append(result, fmt.Errorf("duplicate node id %s", n.ID))
		}
		nodes[n.ID] = true
	}
	paints := make(map[string]bool, len(d.Paints))
	for _, p := range d.Paints {
		if paints[p.ID] {
			result = multierror.Append(result, fmt.Errorf("duplicate paint id %s", p.ID))
		}
		paints[p.ID] = true
	}
	assets := make(map[string]bool, len(d.Assets))
	for _, a := range d.Assets {
		if assets[a.ID] {
			result = multierror.Append(result, fmt.Errorf("duplicate asset id %s", a.ID))
		}
		assets[a.ID] = true
	}

	if !nodes[d.RootNodeID] {
		result = multierror.Append(result, fmt.Errorf("root %s: %w", d.RootNodeID, ErrDanglingReference))
	}
	for _, n := range d.Nodes {
		for _, c := range n.Children {
			if !nodes[c] {
				result = multierror.Append(result, fmt.Errorf("node %s child %s: %w", n.ID, c, ErrDanglingReference))
			}
		}
		for _, s := range n.Styles {
			if s.PaintID != "" && !paints[s.PaintID] {
				result = multierror.Append(result, fmt.Errorf("node %s style paint %s: %w", n.ID, s.PaintID, ErrDanglingReference))
			}
		}
		for _, a := range n.Attributes {
			if a.Attributes.FontID != "" && !assets[a.Attributes.FontID] {
				result = multierror.Append(result, fmt.Errorf("node %s font %s: %w", n.ID, a.Attributes.FontID, ErrDanglingReference))
			}
		}
	}
	for _, p := range d.Paints {
		if p.ImageID != "" && !assets[p.ImageID] {
			result = multierror.Append(result, fmt.Errorf("paint %s image %s: %w", p.ID, p.ImageID, ErrDanglingReference))
		}
	}

	return result.ErrorOrNil()
}

// Validate checks one node record on its own. References to other records
// are checked by Document.Validate. The transform pipeline calls it for
// every record it emits.
func (n *Node) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.ID, validation.Required, validation.Match(nodeIDPattern)),
		validation.Field(&n.Type, validation.Required, validation.In(
			NodeFrame, NodeGroup, NodeRectangle, NodeEllipse, NodePolygon, NodeStar, NodeVector, NodeText)),
		validation.Field(&n.Opacity, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&n.BlendMode, validation.Required),
		validation.Field(&n.Children, validation.When(!n.Type.IsContainer(), validation.Empty)),
		validation.Field(&n.Styles),
		validation.Field(&n.Attributes, validation.When(n.Type != NodeText, validation.Empty)),
	)
}

// Validate checks one style of a node.
func (s Style) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(StyleFill, StyleStroke, StyleDropShadow)),
		validation.Field(&s.PaintID,
			validation.When(s.Type != StyleDropShadow, validation.Required, validation.Match(paintIDPattern))),
		validation.Field(&s.Width, validation.Min(0.0)),
		validation.Field(&s.Color, validation.When(s.Type == StyleDropShadow, validation.Required)),
	)
}

func (a TextAttributes) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Start, validation.Min(0)),
		validation.Field(&a.End, validation.Min(a.Start)),
	)
}

// Validate checks one paint record on its own.
func (p *Paint) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Match(paintIDPattern)),
		validation.Field(&p.Type, validation.Required, validation.In(PaintSolid, PaintGradient, PaintImage)),
		validation.Field(&p.Opacity, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&p.Color, validation.When(p.Type == PaintSolid, validation.Required)),
		validation.Field(&p.Variant, validation.When(p.Type == PaintGradient, validation.Required)),
		validation.Field(&p.ImageID, validation.When(p.Type == PaintImage, validation.Required, validation.Match(assetIDPattern))),
		validation.Field(&p.ScaleMode, validation.When(p.Type == PaintImage, validation.Required)),
	)
}

// Validate checks one asset record on its own, including its content.
func (a *Asset) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required, validation.Match(assetIDPattern)),
		validation.Field(&a.Content),
		validation.Field(&a.ContentType),
	)
}

func (c Content) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.Required, validation.In(ContentBinary, ContentURL)),
		validation.Field(&c.Content, validation.When(c.Type == ContentBinary, validation.Required)),
		validation.Field(&c.URL, validation.When(c.Type == ContentURL, validation.Required)),
	)
}

func (m AssetMimeType) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Type, validation.Required),
	)
}
