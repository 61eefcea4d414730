package vision

// Raster — одноканальный 8-битный буфер width x height.
// Этапы конвейера не меняют входной буфер, а возвращают новый.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster создаёт буфер, заполненный нулями.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

func (r *Raster) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}

func (r *Raster) Set(x, y int, v uint8) {
	r.Pix[y*r.Width+x] = v
}

// Empty сообщает, что в буфере нет ни одного пикселя.
func (r *Raster) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clone возвращает независимую копию буфера.
func (r *Raster) Clone() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// Invert возвращает побитовую инверсию буфера.
func (r *Raster) Invert() *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	for i, v := range r.Pix {
		out.Pix[i] = ^v
	}
	return out
}

// CountNonZero считает ненулевые пиксели.
func (r *Raster) CountNonZero() int {
	n := 0
	for _, v := range r.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
