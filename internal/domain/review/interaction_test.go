package review

import (
	"errors"
	"testing"
)

func TestInteractionSingleGesture(t *testing.T) {
	it := NewInteraction()
	region := Region{X: 10, Y: 10, Width: 30, Height: 20}

	if err := it.BeginDrag(RegionSafeZone, region, Point{X: 15, Y: 15}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := it.BeginDraw(DrawSHeight, Point{X: 1, Y: 1}); !errors.Is(err, ErrInteractionActive) {
		t.Fatalf("second begin = %v, want ErrInteractionActive", err)
	}
	if _, err := it.Release(Point{X: 20, Y: 20}); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if it.Kind() != KindIdle {
		t.Fatalf("kind after release = %s, want idle", it.Kind())
	}
}

func TestInteractionMoveWithoutGesture(t *testing.T) {
	it := NewInteraction()
	if _, err := it.Move(Point{X: 10, Y: 10}); !errors.Is(err, ErrNoInteraction) {
		t.Fatalf("Move = %v, want ErrNoInteraction", err)
	}
	if _, err := it.Release(Point{X: 10, Y: 10}); !errors.Is(err, ErrNoInteraction) {
		t.Fatalf("Release = %v, want ErrNoInteraction", err)
	}
}

func TestInteractionDragKeepsGrabOffset(t *testing.T) {
	it := NewInteraction()
	region := Region{X: 10, Y: 10, Width: 30, Height: 20}

	// Grab 5% inside the region; the origin follows the pointer minus that
	// offset.
	if err := it.BeginDrag(RegionBottleScale, region, Point{X: 15, Y: 15}); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	out, err := it.Move(Point{X: 40, Y: 30})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Region.X != 35 || out.Region.Y != 25 {
		t.Fatalf("region origin = (%v, %v), want (35, 25)", out.Region.X, out.Region.Y)
	}

	// Dragging far past the edge clamps the preview.
	out, err = it.Move(Point{X: 200, Y: 200})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Region.X != 70 || out.Region.Y != 80 {
		t.Fatalf("clamped origin = (%v, %v), want (70, 80)", out.Region.X, out.Region.Y)
	}
}

func TestInteractionResizeClamps(t *testing.T) {
	it := NewInteraction()
	region := Region{X: 10, Y: 10, Width: 30, Height: 20}

	if err := it.BeginResize(RegionSafeZone, region, Point{X: 40, Y: 30}); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	out, err := it.Release(Point{X: 12, Y: 12})
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if out.Region.Width != minRegionSize || out.Region.Height != minRegionSize {
		t.Fatalf("size = %vx%v, want clamped to minimum", out.Region.Width, out.Region.Height)
	}
}

func TestInteractionDrawLocksAxis(t *testing.T) {
	it := NewInteraction()
	if err := it.BeginDraw(DrawFrameBorder, Point{X: 10, Y: 50}); err != nil {
		t.Fatalf("BeginDraw: %v", err)
	}
	out, err := it.Release(Point{X: 30, Y: 53})
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if out.Mode != DrawFrameBorder {
		t.Fatalf("mode = %s", out.Mode)
	}
	if out.Line.End.Y != 50 {
		t.Fatalf("horizontal draw should lock Y, got %v", out.Line.End.Y)
	}
	length, vertical := out.Line.Dominant()
	if vertical || length != 20 {
		t.Fatalf("length = %v vertical = %v, want 20 horizontal", length, vertical)
	}
}
