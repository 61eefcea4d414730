package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"floorplan-analyzer/internal/domain/entity"
)

func TestFindContours_FilledRectangle(t *testing.T) {
	r := NewRaster(20, 20)
	fillRect(r, 5, 5, 10, 5, 255)

	borders := FindContours(r, RetrieveExternal)
	require.Len(t, borders, 1)
	require.False(t, borders[0].Hole)
	require.Equal(t, -1, borders[0].Parent)
	require.ElementsMatch(t, []image.Point{{5, 5}, {14, 5}, {14, 9}, {5, 9}}, borders[0].Points)
	require.Equal(t, entity.BoundingBox{X: 5, Y: 5, Width: 10, Height: 5}, BoundingRect(borders[0].Points))
}

func TestFindContours_RingHierarchy(t *testing.T) {
	r := NewRaster(20, 20)
	fillRect(r, 2, 2, 16, 16, 255)
	fillRect(r, 4, 4, 12, 12, 0)

	tree := FindContours(r, RetrieveTree)
	require.Len(t, tree, 2)

	require.False(t, tree[0].Hole)
	require.Equal(t, -1, tree[0].Parent)
	require.Equal(t, entity.BoundingBox{X: 2, Y: 2, Width: 16, Height: 16}, BoundingRect(tree[0].Points))

	require.True(t, tree[1].Hole)
	require.Equal(t, 0, tree[1].Parent)
	require.Equal(t, entity.BoundingBox{X: 3, Y: 3, Width: 14, Height: 14}, BoundingRect(tree[1].Points))

	external := FindContours(r, RetrieveExternal)
	require.Len(t, external, 1)
	require.Equal(t, tree[0].Points, external[0].Points)
}

func TestFindContours_FullImage(t *testing.T) {
	r := NewRaster(10, 8)
	fillRect(r, 0, 0, 10, 8, 255)

	borders := FindContours(r, RetrieveExternal)
	require.Len(t, borders, 1)
	require.Equal(t, entity.BoundingBox{Width: 10, Height: 8}, BoundingRect(borders[0].Points))
}

func TestFindContours_SinglePixel(t *testing.T) {
	r := NewRaster(9, 9)
	r.Set(4, 4, 255)

	borders := FindContours(r, RetrieveTree)
	require.Len(t, borders, 1)
	require.Equal(t, []image.Point{{4, 4}}, borders[0].Points)
	require.Equal(t, entity.BoundingBox{X: 4, Y: 4, Width: 1, Height: 1}, BoundingRect(borders[0].Points))
}

func TestFindContours_RasterScanOrder(t *testing.T) {
	r := NewRaster(40, 30)
	fillRect(r, 25, 2, 5, 5, 255)  // выше и правее
	fillRect(r, 2, 10, 5, 5, 255)  // ниже и левее
	fillRect(r, 10, 20, 8, 3, 255) // ещё ниже

	borders := FindContours(r, RetrieveExternal)
	require.Len(t, borders, 3)
	require.Equal(t, 25, BoundingRect(borders[0].Points).X)
	require.Equal(t, 2, BoundingRect(borders[1].Points).X)
	require.Equal(t, 10, BoundingRect(borders[2].Points).X)
}

func TestFindContours_EmptyMask(t *testing.T) {
	require.Empty(t, FindContours(NewRaster(5, 5), RetrieveTree))
	require.Empty(t, FindContours(NewRaster(0, 0), RetrieveTree))
}

func TestFindContours_DoesNotModifyInput(t *testing.T) {
	r := NewRaster(10, 10)
	fillRect(r, 2, 2, 4, 4, 255)
	before := r.Clone()

	FindContours(r, RetrieveTree)
	require.Equal(t, before.Pix, r.Pix)
}
