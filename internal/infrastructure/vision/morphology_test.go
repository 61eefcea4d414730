package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinarize(t *testing.T) {
	gray := &Raster{Width: 4, Height: 1, Pix: []uint8{0, 199, 200, 255}}

	bin := Binarize(gray, 200)
	require.Equal(t, []uint8{255, 255, 0, 0}, bin.Pix)
}

func TestDilateErode_SinglePixel(t *testing.T) {
	r := NewRaster(11, 11)
	r.Set(5, 5, 255)

	dilated := Dilate(r, 3)
	require.Equal(t, 9, dilated.CountNonZero())
	require.Equal(t, uint8(255), dilated.At(4, 4))
	require.Equal(t, uint8(255), dilated.At(6, 6))
	require.Equal(t, uint8(0), dilated.At(7, 5))

	eroded := Erode(dilated, 3)
	require.Equal(t, 1, eroded.CountNonZero())
	require.Equal(t, uint8(255), eroded.At(5, 5))
}

func TestClose_BridgesWallGap(t *testing.T) {
	r := NewRaster(50, 30)
	fillRect(r, 5, 10, 16, 3, 255)  // x 5..20
	fillRect(r, 25, 10, 16, 3, 255) // x 25..40

	closed := Close(r, 15)
	for x := 21; x <= 24; x++ {
		require.Equal(t, uint8(255), closed.At(x, 11), "gap pixel x=%d", x)
	}
	require.Equal(t, uint8(0), closed.At(22, 25))
	require.Equal(t, uint8(0), r.At(22, 11), "source must not change")
}

func TestClose_KeepsFilledRectangle(t *testing.T) {
	r := NewRaster(60, 60)
	fillRect(r, 20, 20, 15, 10, 255)

	closed := Close(r, 15)
	require.Equal(t, r.Pix, closed.Pix)
}

func TestRankFilter_TrivialKernel(t *testing.T) {
	r := NewRaster(3, 3)
	r.Set(1, 1, 255)

	require.Equal(t, r.Pix, Dilate(r, 1).Pix)
	require.Equal(t, r.Pix, Erode(r, 0).Pix)
}
