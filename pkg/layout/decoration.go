package layout

// Decorated composes a background or an overlay onto content.
//
// The content is measured first with the parent's constraints. The
// decoration is then proposed exactly the content's measured size, so it
// can never make the composite larger: the composite is always the
// content's size and the decoration is aligned inside it, behind the
// content for a background and in front of it for an overlay.
//
// Nil content yields a 0x0 placement rather than an error. A parent stack
// still counts that placement, spacing included.
type Decorated struct {
	Meta
	Content    Node
	Decoration Node
	Alignment  Alignment
	Overlay    bool
}

// Background places decoration behind content.
func Background(content, decoration Node, align Alignment) *Decorated {
	return &Decorated{Content: content, Decoration: decoration, Alignment: align}
}

// Overlay places decoration in front of content.
func Overlay(content, decoration Node, align Alignment) *Decorated {
	return &Decorated{Content: content, Decoration: decoration, Alignment: align, Overlay: true}
}

func (d *Decorated) kind() string {
	if d.Overlay {
		return "overlay"
	}
	return "background"
}

func (d *Decorated) Describe() string { return d.describe(d.kind()) }

func (d *Decorated) Measure(c Constraints) (*Placement, error) {
	if d.Content == nil {
		return d.place(d.kind(), Size{}), nil
	}

	content, err := d.Content.Measure(c)
	if err != nil {
		return nil, childErr(d, err)
	}
	box := content.Size

	pl := d.place(d.kind(), box)
	pl.add(Point{}, LayerContent, content)

	if d.Decoration != nil {
		deco, err := d.Decoration.Measure(ProposeSize(box))
		if err != nil {
			return nil, childErr(d, err)
		}
		layer := LayerBehind
		if d.Overlay {
			layer = LayerFront
		}
		pl.add(d.Alignment.Offset(box, deco.Size), layer, deco)
	}
	return pl, nil
}

func (d *Decorated) FallbackMeasure(proposed Size) (Size, error) {
	if d.Content == nil {
		return Size{}, nil
	}
	s, err := d.Content.FallbackMeasure(proposed)
	if err != nil {
		return Size{}, childErr(d, err)
	}
	return s, nil
}

func (d *Decorated) FlexRange(axis Axis, cross int) (FlexRange, error) {
	if d.Content == nil {
		return Fixed(0), nil
	}
	r, err := d.Content.FlexRange(axis, cross)
	if err != nil {
		return FlexRange{}, childErr(d, err)
	}
	return r, nil
}
