// Package snapshot is an in-memory scenegraph.Host built from a captured
// scene. It backs the CLI when exporting a snapshot file and doubles as the
// host fake in tests.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// ErrUnsupportedFormat is returned by ExportAsync for formats the scene
// cannot render.
var ErrUnsupportedFormat = errors.New("snapshot: unsupported export format")

// Scene is a captured document: a root node plus the binary resources its
// paints and text reference.
type Scene struct {
	Root scenegraph.Node

	mu         sync.Mutex
	images     map[string][]byte
	fonts      map[scenegraph.Font][]byte
	containers map[*container]struct{}
	failures   map[string]int
	exports    int
	created    int
}

// NewScene creates a scene around root.
func NewScene(root scenegraph.Node) *Scene {
	return &Scene{
		Root:       root,
		images:     make(map[string][]byte),
		fonts:      make(map[scenegraph.Font][]byte),
		containers: make(map[*container]struct{}),
		failures:   make(map[string]int),
	}
}

// AddImage registers the encoded image for an image paint hash.
func (s *Scene) AddImage(hash string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[hash] = data
}

// AddFont registers the font file for a face.
func (s *Scene) AddFont(font scenegraph.Font, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fonts[font] = data
}

// FailExports makes the next n exports of the node with the given host ID
// fail. Exports of clones count against the original's ID.
func (s *Scene) FailExports(nodeID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[nodeID] = n
}

// LiveContainers returns the number of containers created and not yet
// removed.
func (s *Scene) LiveContainers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.containers)
}

// Exports returns the number of successful exports.
func (s *Scene) Exports() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports
}

func (s *Scene) ExportAsync(ctx context.Context, node scenegraph.Node, settings scenegraph.ExportSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("export: %w", scenegraph.ErrNotFound)
	}

	if err := s.takeFailure(exportKey(node)); err != nil {
		return nil, err
	}

	img := render(node, settings.Scale)

	var buf bytes.Buffer
	switch settings.Format {
	case scenegraph.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case scenegraph.FormatJPG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, settings.Format)
	}

	s.mu.Lock()
	s.exports++
	s.mu.Unlock()
	return buf.Bytes(), nil
}

func (s *Scene) takeFailure(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.failures[id]; n > 0 {
		s.failures[id] = n - 1
		return fmt.Errorf("export of node %s failed", id)
	}
	return nil
}

// exportKey is the ID failures are tracked under. A container holding a
// single clone exports under the clone's ID.
func exportKey(node scenegraph.Node) string {
	if c, ok := node.(*container); ok && len(c.children) == 1 {
		return c.children[0].ID()
	}
	return node.ID()
}

func (s *Scene) CreateContainer(ctx context.Context) (scenegraph.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := &container{scene: s}
	c.Base = newBase("", "export container", scenegraph.KindFrame, 1, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	c.NodeID = fmt.Sprintf("container:%d", s.created)
	s.containers[c] = struct{}{}
	return c, nil
}

func (s *Scene) ImageBytes(ctx context.Context, hash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.images[hash]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", hash, scenegraph.ErrNotFound)
	}
	return data, nil
}

func (s *Scene) FontBytes(ctx context.Context, font scenegraph.Font) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.fonts[font]
	if !ok {
		return nil, fmt.Errorf("font %s %s: %w", font.Family, font.Style, scenegraph.ErrNotFound)
	}
	return data, nil
}

type container struct {
	Base
	scene    *Scene
	children []scenegraph.Node
	removed  bool
}

func (c *container) Children() []scenegraph.Node { return c.children }

func (c *container) Resize(width, height float64) error {
	if c.removed {
		return errors.New("container was removed")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid container size %gx%g", width, height)
	}
	c.Dimensions = scenegraph.Vec2{X: width, Y: height}
	return nil
}

func (c *container) AppendClone(node scenegraph.Node) error {
	if c.removed {
		return errors.New("container was removed")
	}
	clone, err := cloneAtOrigin(node)
	if err != nil {
		return err
	}
	c.children = appendChildren(c, c.children, []scenegraph.Node{clone})
	return nil
}

func (c *container) Remove() error {
	c.scene.mu.Lock()
	defer c.scene.mu.Unlock()
	if c.removed {
		return nil
	}
	c.removed = true
	delete(c.scene.containers, c)
	return nil
}

// cloneAtOrigin copies node with its translation zeroed. Children are
// shared with the original.
func cloneAtOrigin(node scenegraph.Node) (scenegraph.Node, error) {
	var clone scenegraph.Node
	switch n := node.(type) {
	case *Frame:
		cp := *n
		cp.children = append([]scenegraph.Node(nil), n.children...)
		cp.SetPosition(0, 0)
		clone = &cp
	case *Group:
		cp := *n
		cp.children = append([]scenegraph.Node(nil), n.children...)
		cp.SetPosition(0, 0)
		clone = &cp
	case *Shape:
		cp := *n
		cp.SetPosition(0, 0)
		clone = &cp
	case *Text:
		cp := *n
		cp.SetPosition(0, 0)
		clone = &cp
	default:
		return nil, fmt.Errorf("cannot clone %T", node)
	}
	return clone, nil
}

var _ scenegraph.Host = (*Scene)(nil)
