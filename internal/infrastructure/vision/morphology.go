package vision

// Binarize строит маску стен: пиксели темнее threshold становятся 255,
// остальные (светлый фон) — 0.
func Binarize(gray *Raster, threshold uint8) *Raster {
	out := NewRaster(gray.Width, gray.Height)
	for i, v := range gray.Pix {
		if v < threshold {
			out.Pix[i] = 255
		}
	}
	return out
}

// Close выполняет морфологическое закрытие (дилатация, затем эрозия)
// квадратным элементом size x size.
func Close(mask *Raster, size int) *Raster {
	return Erode(Dilate(mask, size), size)
}

// Dilate — максимум по квадратному окну size x size.
func Dilate(src *Raster, size int) *Raster {
	return rankFilter(src, size, 0, func(a, b uint8) uint8 { return max(a, b) })
}

// Erode — минимум по квадратному окну size x size.
func Erode(src *Raster, size int) *Raster {
	return rankFilter(src, size, 255, func(a, b uint8) uint8 { return min(a, b) })
}

// rankFilter применяет сепарабельный фильтр по окну с якорем в центре.
// Пиксели за границей изображения в окно не попадают.
func rankFilter(src *Raster, size int, init uint8, pick func(a, b uint8) uint8) *Raster {
	if size <= 1 || src.Empty() {
		return src.Clone()
	}
	anchor := size / 2

	// Проход по строкам
	rows := NewRaster(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		line := src.Pix[y*src.Width : (y+1)*src.Width]
		for x := 0; x < src.Width; x++ {
			lo := max(x-anchor, 0)
			hi := min(x-anchor+size-1, src.Width-1)
			v := init
			for k := lo; k <= hi; k++ {
				v = pick(v, line[k])
			}
			rows.Pix[y*src.Width+x] = v
		}
	}

	// Проход по столбцам
	out := NewRaster(src.Width, src.Height)
	for x := 0; x < src.Width; x++ {
		for y := 0; y < src.Height; y++ {
			lo := max(y-anchor, 0)
			hi := min(y-anchor+size-1, src.Height-1)
			v := init
			for k := lo; k <= hi; k++ {
				v = pick(v, rows.Pix[k*src.Width+x])
			}
			out.Pix[y*src.Width+x] = v
		}
	}
	return out
}
