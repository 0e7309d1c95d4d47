package shape

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wudi/layoutkit/optional"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tol }

func TestComputeDimensionsIntrinsic(t *testing.T) {
	// 960x720 px at the default 96 DPI is 10in x 7.5in.
	got := ComputeDimensions(960, 720, Sizing{}, nil)
	want := Layout{Width: 720, Height: 540, CropW: 960, CropH: 720}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDimensionsLockedBranches(t *testing.T) {
	tests := []struct {
		name       string
		sz         Sizing
		wantW      float64
		wantH      float64
	}{
		{
			name:  "width only derives height",
			sz:    Sizing{Width: optional.NewFloat64(360)},
			wantW: 360, wantH: 270, // 720x540 aspect
		},
		{
			name:  "height only derives width",
			sz:    Sizing{Height: optional.NewFloat64(270)},
			wantW: 360, wantH: 270,
		},
		{
			name:  "both set lock has no effect",
			sz:    Sizing{Width: optional.NewFloat64(100), Height: optional.NewFloat64(400)},
			wantW: 100, wantH: 400,
		},
		{
			name:  "scale height scales both axes",
			sz:    Sizing{ScaleHeight: optional.NewFloat64(0.5)},
			wantW: 360, wantH: 270,
		},
		{
			name:  "scale width scales both axes",
			sz:    Sizing{ScaleWidth: optional.NewFloat64(2)},
			wantW: 1440, wantH: 1080,
		},
		{
			name: "scale applies after explicit width",
			sz: Sizing{
				Width:      optional.NewFloat64(360),
				ScaleWidth: optional.NewFloat64(0.5),
			},
			wantW: 180, wantH: 135,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDimensions(960, 720, tt.sz, nil)
			if got.Failure != FailureNone {
				t.Fatalf("unexpected failure %v", got.Failure)
			}
			if !approx(got.Width, tt.wantW) || !approx(got.Height, tt.wantH) {
				t.Errorf("got %gx%g, want %gx%g", got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestComputeDimensionsUnlocked(t *testing.T) {
	sz := Sizing{
		Width:           optional.NewFloat64(100),
		ScaleHeight:     optional.NewFloat64(0.5),
		LockAspectRatio: optional.NewBool(false),
	}
	got := ComputeDimensions(960, 720, sz, nil)
	if !approx(got.Width, 100) {
		t.Errorf("width = %g, want 100", got.Width)
	}
	// height falls back to inherent 540 and is scaled independently
	if !approx(got.Height, 270) {
		t.Errorf("height = %g, want 270", got.Height)
	}
}

func TestComputeDimensionsBothScalesDisableLock(t *testing.T) {
	sz := Sizing{
		ScaleWidth:  optional.NewFloat64(2),
		ScaleHeight: optional.NewFloat64(0.5),
	}
	got := ComputeDimensions(960, 720, sz, nil)
	if !approx(got.Width, 1440) || !approx(got.Height, 270) {
		t.Errorf("got %gx%g, want 1440x270", got.Width, got.Height)
	}
}

func TestComputeDimensionsResolution(t *testing.T) {
	// 960x720 px at 192 DPI is 5in x 3.75in.
	sz := Sizing{Resolution: optional.NewFloat64(192)}
	got := ComputeDimensions(960, 720, sz, nil)
	if !approx(got.Width, 360) || !approx(got.Height, 270) {
		t.Errorf("got %gx%g, want 360x270", got.Width, got.Height)
	}
}

func TestComputeDimensionsZeroResolutionGuard(t *testing.T) {
	sz := Sizing{Resolution: optional.NewFloat64(0)}
	got := ComputeDimensions(720, 720, sz, nil)
	// the 72 DPI guard makes 720 px exactly 720 pt
	if !approx(got.Width, 720) || !approx(got.Height, 720) {
		t.Errorf("got %gx%g, want 720x720", got.Width, got.Height)
	}
	if got.Failure != FailureNone {
		t.Errorf("failure = %v, want none", got.Failure)
	}
}

func TestComputeDimensionsCrop(t *testing.T) {
	crop := &Crop{
		Left:   optional.NewFloat64(72),
		Right:  optional.NewFloat64(72),
		Top:    optional.NewFloat64(36),
		Bottom: optional.NewFloat64(36),
	}
	got := ComputeDimensions(960, 720, Sizing{}, crop)

	// Pixel-space window at 96 DPI: 96 px per inch margin.
	if !approx(got.CropX, 96) || !approx(got.CropY, 48) {
		t.Errorf("crop origin = (%g, %g), want (96, 48)", got.CropX, got.CropY)
	}
	if !approx(got.CropW, 960-192) || !approx(got.CropH, 720-96) {
		t.Errorf("crop size = %gx%g, want 768x624", got.CropW, got.CropH)
	}

	// Display space: no user size, so both axis scales are 1 and the
	// margins subtract directly.
	if !approx(got.Width, 720-144) || !approx(got.Height, 540-72) {
		t.Errorf("size = %gx%g, want 576x468", got.Width, got.Height)
	}
}

func TestComputeDimensionsCropScaling(t *testing.T) {
	// With a user width, crop margins scale by the axis scale.
	sz := Sizing{Width: optional.NewFloat64(360)} // xScale = yScale = 0.5
	crop := &Crop{Top: optional.NewFloat64(72), Bottom: optional.NewFloat64(72)}

	pre := ComputeDimensions(960, 720, sz, nil)
	got := ComputeDimensions(960, 720, sz, crop)

	yScale := pre.Height / 540
	wantH := pre.Height - yScale*(72+72)
	if !approx(got.Height, wantH) {
		t.Errorf("height = %g, want %g", got.Height, wantH)
	}
	if !approx(got.Width, pre.Width) {
		t.Errorf("width = %g, want %g", got.Width, pre.Width)
	}
}

func TestComputeDimensionsEmptySize(t *testing.T) {
	// Crop margins larger than the content drive the result negative.
	crop := &Crop{
		Left:  optional.NewFloat64(720),
		Right: optional.NewFloat64(720),
	}
	got := ComputeDimensions(960, 720, Sizing{}, crop)
	if got.Failure != FailureEmptySize {
		t.Fatalf("failure = %v, want empty-size", got.Failure)
	}
	if !approx(got.Width, FallbackSize) || !approx(got.Height, FallbackSize) {
		t.Errorf("fallback = %gx%g, want %gx%g square", got.Width, got.Height, FallbackSize, FallbackSize)
	}
}

func TestComputeDimensionsBadPixelSize(t *testing.T) {
	got := ComputeDimensions(0, 720, Sizing{Width: optional.NewFloat64(100)}, nil)
	if got.Failure != FailureNotRead {
		t.Fatalf("failure = %v, want not-read", got.Failure)
	}
	// explicit user width wins over the fallback constant
	if !approx(got.Width, 100) || !approx(got.Height, FallbackSize) {
		t.Errorf("got %gx%g, want 100x%g", got.Width, got.Height, FallbackSize)
	}
}

func TestComputeDimensionsIdempotent(t *testing.T) {
	sz := Sizing{Width: optional.NewFloat64(360), ScaleWidth: optional.NewFloat64(1.5)}
	crop := &Crop{Left: optional.NewFloat64(18)}
	a := ComputeDimensions(960, 720, sz, crop)
	b := ComputeDimensions(960, 720, sz, crop)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("not idempotent (-first +second):\n%s", diff)
	}
}
