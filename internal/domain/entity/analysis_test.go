package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAnalysisResult_EmptyCollectionsAreArrays(t *testing.T) {
	res := NewAnalysisResult(640, 480, nil, nil, nil, nil)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"edges": [],
		"contours": [],
		"regions": [],
		"racks": [],
		"dimensions": {"width": 640, "height": 480}
	}`, string(data))
}

func TestAnalysisResult_JSONFieldNames(t *testing.T) {
	res := NewAnalysisResult(100, 100,
		[]Segment{{Start: Point{X: 0, Y: 1}, End: Point{X: 99, Y: 1}, Kind: SegmentPerimeter}},
		[]Contour{{ID: "contour_0", Bounds: BoundingBox{Width: 100, Height: 100}, Area: 10000}},
		[]Region{{ID: "contour_0", Bounds: BoundingBox{Width: 100, Height: 100}, SuitableForRacks: true, Type: RegionMainArea}},
		[]RackCell{{ID: "rack_cell_3", Bounds: BoundingBox{X: 5, Y: 6, Width: 7, Height: 8}, Area: 56}},
	)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"edges": [{"start": {"x": 0, "y": 1}, "end": {"x": 99, "y": 1}, "type": "perimeter"}],
		"contours": [{"id": "contour_0", "bounds": {"x": 0, "y": 0, "width": 100, "height": 100}, "area": 10000}],
		"regions": [{"id": "contour_0", "bounds": {"x": 0, "y": 0, "width": 100, "height": 100}, "suitableForRacks": true, "type": "main_area"}],
		"racks": [{"id": "rack_cell_3", "bounds": {"x": 5, "y": 6, "width": 7, "height": 8}, "area": 56}],
		"dimensions": {"width": 100, "height": 100}
	}`, string(data))
}

func TestAnalysisResult_Summary(t *testing.T) {
	res := NewAnalysisResult(200, 100, nil, nil, []Region{
		{ID: "contour_0", SuitableForRacks: true, Type: RegionMainArea},
		{ID: "contour_1", SuitableForRacks: true, Type: RegionStorageArea},
		{ID: "contour_2", Type: RegionStorageArea},
	}, []RackCell{{ID: "rack_cell_0"}})

	require.Len(t, res.MainAreas(), 1)
	require.Equal(t, 2, res.SuitableRegions())
	require.Equal(t, "200x100: perimeter=0 regions=3 (main=1, suitable=2) racks=1", res.Summary())
}

func TestDefaultAnalysisParams(t *testing.T) {
	p := DefaultAnalysisParams()
	require.NoError(t, p.Validate())
	require.Equal(t, uint8(200), p.BinaryThreshold)
	require.Equal(t, 15, p.CloseKernel)
	require.Equal(t, 400, p.HoughMinLength(800, 600))
	require.Equal(t, 300, p.HoughMinLength(101, 600))
}

func TestAnalysisParams_Validate(t *testing.T) {
	p := DefaultAnalysisParams()
	p.CloseKernel = 0
	p.CannyLow, p.CannyHigh = 150, 50
	p.RackMinAspect, p.RackMaxAspect = 3, 0.3

	err := p.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "close kernel")
	require.Contains(t, err.Error(), "canny")
	require.Contains(t, err.Error(), "aspect")
}

func TestErrors(t *testing.T) {
	cause := errors.New("unexpected EOF")

	decodeErr := fmt.Errorf("analyze: %w", &DecodeError{Err: cause})
	var de *DecodeError
	require.ErrorAs(t, decodeErr, &de)
	require.ErrorIs(t, decodeErr, cause)
	require.False(t, IsClientError(decodeErr))

	procErr := &ProcessingError{Stage: "normalize", Err: cause}
	require.Equal(t, "normalize: unexpected EOF", procErr.Error())

	require.True(t, IsClientError(fmt.Errorf("request: %w", ErrMissingParameter)))

	sizeErr := &SizeLimitError{Width: 5000, Height: 10, Max: 4096}
	require.Equal(t, "working size 5000x10 exceeds limit 4096 per side", sizeErr.Error())
	require.True(t, IsClientError(sizeErr))
}
