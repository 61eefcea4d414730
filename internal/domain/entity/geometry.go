package entity

// Point — точка в пикселях рабочего разрешения.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoundingBox — прямоугольная область в пикселях рабочего разрешения.
type BoundingBox struct {
	X      int `json:"x"`      // координата X левого верхнего угла
	Y      int `json:"y"`      // координата Y левого верхнего угла
	Width  int `json:"width"`  // ширина области в пикселях
	Height int `json:"height"` // высота области в пикселях
}

// Area возвращает площадь прямоугольника.
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// AspectRatio возвращает отношение ширины к высоте (0 при нулевой высоте).
func (b BoundingBox) AspectRatio() float64 {
	if b.Height == 0 {
		return 0
	}
	return float64(b.Width) / float64(b.Height)
}

// Within сообщает, лежит ли область целиком внутри изображения width x height.
func (b BoundingBox) Within(width, height int) bool {
	return b.X >= 0 && b.Y >= 0 && b.Width >= 0 && b.Height >= 0 &&
		b.X+b.Width <= width && b.Y+b.Height <= height
}
