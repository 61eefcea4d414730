package vision

import (
	"image"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"floorplan-analyzer/internal/domain/entity"
)

// ArcLength возвращает периметр замкнутого многоугольника.
func ArcLength(pts []image.Point) float64 {
	n := len(pts)
	if n < 2 {
		return 0
	}
	var length float64
	for k := 0; k < n; k++ {
		a, b := pts[k], pts[(k+1)%n]
		length += math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
	}
	return length
}

// ApproxPolyDP упрощает замкнутый многоугольник алгоритмом Дугласа–Пекера
// с допуском epsilon.
//
// Обход начинается с вершины, наиболее удалённой от первой точки, поэтому
// начальная точка цепочки не закрепляется в результате. Затем, как в
// OpenCV, убираются почти коллинеарные вершины.
func ApproxPolyDP(pts []image.Point, epsilon float64) []image.Point {
	n := len(pts)
	if n < 3 {
		return append([]image.Point(nil), pts...)
	}

	start := 0
	var best int
	for k := 1; k < n; k++ {
		dx, dy := pts[k].X-pts[0].X, pts[k].Y-pts[0].Y
		if d := dx*dx + dy*dy; d > best {
			best, start = d, k
		}
	}

	ls := make(orb.LineString, 0, n+1)
	for k := 0; k < n; k++ {
		p := pts[(start+k)%n]
		ls = append(ls, orb.Point{float64(p.X), float64(p.Y)})
	}
	ls = append(ls, ls[0])

	simplified, ok := simplify.DouglasPeucker(epsilon).Simplify(ls).(orb.LineString)
	if !ok {
		simplified = ls
	}
	if len(simplified) > 1 && simplified[0].Equal(simplified[len(simplified)-1]) {
		simplified = simplified[:len(simplified)-1]
	}

	out := make([]image.Point, len(simplified))
	for k, p := range simplified {
		out[k] = image.Point{X: int(p[0]), Y: int(p[1])}
	}
	return dropCollinear(out, epsilon)
}

// dropCollinear убирает вершины, лежащие почти на хорде между соседями.
func dropCollinear(pts []image.Point, epsilon float64) []image.Point {
	for len(pts) > 3 {
		removed := false
		n := len(pts)
		for k := 0; k < n; k++ {
			a, p, b := pts[(k-1+n)%n], pts[k], pts[(k+1)%n]
			dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
			dist := math.Abs(float64(p.X-a.X)*dy - float64(p.Y-a.Y)*dx)
			inner := float64(p.X-a.X)*float64(b.X-p.X) + float64(p.Y-a.Y)*float64(b.Y-p.Y)
			if dist*dist <= 0.5*epsilon*epsilon*(dx*dx+dy*dy) && dx != 0 && dy != 0 && inner >= 0 {
				pts = append(pts[:k:k], pts[k+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return pts
}

// IsConvex проверяет, что многоугольник выпуклый: все повороты в одну
// сторону, вырожденные (нулевые) повороты не допускаются.
func IsConvex(pts []image.Point) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	orientation := 0
	for k := 0; k < n; k++ {
		a, b, c := pts[k], pts[(k+1)%n], pts[(k+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			orientation |= 1
		case cross < 0:
			orientation |= 2
		default:
			return false
		}
		if orientation == 3 {
			return false
		}
	}
	return true
}

// BoundingRect возвращает описывающий прямоугольник точек (включительно).
func BoundingRect(pts []image.Point) entity.BoundingBox {
	if len(pts) == 0 {
		return entity.BoundingBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return entity.BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}
