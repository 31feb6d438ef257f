package review

import "errors"

var (
	// ErrInteractionActive is returned when a new gesture starts before the
	// previous one was released.
	ErrInteractionActive = errors.New("review: interaction already in progress")
	// ErrNoInteraction is returned for a move or release with no active
	// gesture.
	ErrNoInteraction = errors.New("review: no interaction in progress")
)

type InteractionKind string

const (
	KindIdle     InteractionKind = "idle"
	KindDragging InteractionKind = "dragging"
	KindResizing InteractionKind = "resizing"
	KindDrawing  InteractionKind = "drawing"
)

// Interaction is the single-pointer gesture state machine. At most one
// gesture is live at a time; geometry is only committed on Release.
type Interaction struct {
	kind     InteractionKind
	regionID string
	region   Region
	grab     Point
	mode     DrawMode
	line     Line
}

// InteractionOutcome is the committed effect of a released gesture.
type InteractionOutcome struct {
	Kind     InteractionKind
	RegionID string
	Region   Region
	Mode     DrawMode
	Line     Line
}

func NewInteraction() *Interaction {
	return &Interaction{kind: KindIdle}
}

func (it *Interaction) Kind() InteractionKind { return it.kind }

// BeginDrag grabs a region at the pointer. The grab offset keeps the region
// from snapping its origin to the pointer.
func (it *Interaction) BeginDrag(regionID string, region Region, at Point) error {
	if it.kind != KindIdle {
		return ErrInteractionActive
	}
	it.kind = KindDragging
	it.regionID = regionID
	it.region = region
	it.grab = Point{X: at.X - region.X, Y: at.Y - region.Y}
	return nil
}

// BeginResize grabs a region's bottom-right handle.
func (it *Interaction) BeginResize(regionID string, region Region, at Point) error {
	if it.kind != KindIdle {
		return ErrInteractionActive
	}
	it.kind = KindResizing
	it.regionID = regionID
	it.region = region
	return nil
}

// BeginDraw anchors a measurement line at the pointer.
func (it *Interaction) BeginDraw(mode DrawMode, at Point) error {
	if it.kind != KindIdle {
		return ErrInteractionActive
	}
	it.kind = KindDrawing
	it.mode = mode
	it.line = Line{Start: at, End: at}
	return nil
}

// Move updates the live geometry from the pointer position and returns a
// preview of the current state. Clamping applies on every move, so the
// preview never leaves the canvas.
func (it *Interaction) Move(at Point) (InteractionOutcome, error) {
	switch it.kind {
	case KindDragging:
		it.region = it.region.TranslatedTo(at.X-it.grab.X, at.Y-it.grab.Y)
	case KindResizing:
		it.region = it.region.ResizedTo(at.X-it.region.X, at.Y-it.region.Y)
	case KindDrawing:
		it.line = it.line.LockToAxis(at)
	default:
		return InteractionOutcome{}, ErrNoInteraction
	}
	return it.snapshot(), nil
}

// Release commits the gesture and resets to idle. The caller applies the
// outcome: region gestures feed RecalculateRegion, draw gestures feed
// ApplyMeasurement.
func (it *Interaction) Release(at Point) (InteractionOutcome, error) {
	if it.kind == KindIdle {
		return InteractionOutcome{}, ErrNoInteraction
	}
	if _, err := it.Move(at); err != nil {
		return InteractionOutcome{}, err
	}
	out := it.snapshot()
	*it = Interaction{kind: KindIdle}
	return out, nil
}

func (it *Interaction) snapshot() InteractionOutcome {
	return InteractionOutcome{
		Kind:     it.kind,
		RegionID: it.regionID,
		Region:   it.region,
		Mode:     it.mode,
		Line:     it.line,
	}
}
