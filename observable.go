package stage

// ObservablePoint is an (x, y) pair whose writes are published. Every setter
// stores the value first and then publishes it on the field's own channel, so
// a subscriber reading the point back sees the new value.
type ObservablePoint struct {
	x, y float64
	xCh  Channel[float64]
	yCh  Channel[float64]
}

// NewObservablePoint creates a point publishing x writes on xCh and y writes
// on yCh. Either channel may be nil.
func NewObservablePoint(x, y float64, xCh, yCh Channel[float64]) *ObservablePoint {
	return &ObservablePoint{x: x, y: y, xCh: xCh, yCh: yCh}
}

// X returns the current x.
func (p *ObservablePoint) X() float64 { return p.x }

// Y returns the current y.
func (p *ObservablePoint) Y() float64 { return p.y }

// Vec2 returns the current value as a Vec2.
func (p *ObservablePoint) Vec2() Vec2 { return Vec2{p.x, p.y} }

// SetX assigns x and publishes it.
func (p *ObservablePoint) SetX(v float64) {
	p.x = v
	publish(p.xCh, v)
}

// SetY assigns y and publishes it.
func (p *ObservablePoint) SetY(v float64) {
	p.y = v
	publish(p.yCh, v)
}

// Set is SetX followed by SetY: two writes, two notifications.
func (p *ObservablePoint) Set(x, y float64) {
	p.SetX(x)
	p.SetY(y)
}

// ObservableSize is a (width, height) pair with the same publishing contract
// as ObservablePoint.
type ObservableSize struct {
	width, height float64
	widthCh       Channel[float64]
	heightCh      Channel[float64]
}

// NewObservableSize creates a size publishing width writes on wCh and height
// writes on hCh. Either channel may be nil.
func NewObservableSize(width, height float64, wCh, hCh Channel[float64]) *ObservableSize {
	return &ObservableSize{width: width, height: height, widthCh: wCh, heightCh: hCh}
}

// Width returns the current width.
func (s *ObservableSize) Width() float64 { return s.width }

// Height returns the current height.
func (s *ObservableSize) Height() float64 { return s.height }

// SetWidth assigns width and publishes it.
func (s *ObservableSize) SetWidth(v float64) {
	s.width = v
	publish(s.widthCh, v)
}

// SetHeight assigns height and publishes it.
func (s *ObservableSize) SetHeight(v float64) {
	s.height = v
	publish(s.heightCh, v)
}

// Set is SetWidth followed by SetHeight.
func (s *ObservableSize) Set(width, height float64) {
	s.SetWidth(width)
	s.SetHeight(height)
}
