package vision

import "image"

// RetrievalMode определяет, какие границы возвращает FindContours.
type RetrievalMode int

const (
	// RetrieveExternal — только самые внешние границы.
	RetrieveExternal RetrievalMode = iota
	// RetrieveTree — все границы, включая вложенные и границы дыр.
	RetrieveTree
)

// Border — прослеженная граница связной области.
type Border struct {
	// Points — вершины цепочки: остаются только точки, где меняется
	// направление обхода.
	Points []image.Point
	// Parent — индекс родительской границы, -1 для рамки изображения.
	Parent int
	// Hole — граница дыры (внутренняя), а не внешняя граница.
	Hole bool
}

// 8-связные соседи по часовой стрелке (ось Y направлена вниз), начиная с востока.
var neighbours = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// FindContours прослеживает границы ненулевых областей маски
// (алгоритм Suzuki–Abe). Изображение считается окружённым нулевой рамкой,
// так что область, касающаяся края, получает границу по краю.
// Границы возвращаются в порядке обнаружения при построчном обходе.
func FindContours(mask *Raster, mode RetrievalMode) []Border {
	if mask.Empty() {
		return nil
	}
	w, h := mask.Width+2, mask.Height+2
	f := make([]int32, w*h)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Pix[y*mask.Width+x] != 0 {
				f[(y+1)*w+x+1] = 1
			}
		}
	}

	// Номер 1 зарезервирован за рамкой; она считается границей дыры.
	type info struct {
		hole   bool
		parent int32
	}
	infos := []info{{}, {hole: true, parent: 0}}
	var borders []Border

	nbd := int32(1)
	for i := 1; i < h-1; i++ {
		lnbd := int32(1)
		for j := 1; j < w-1; j++ {
			v := f[i*w+j]
			var from image.Point
			var hole bool
			switch {
			case v == 1 && f[i*w+j-1] == 0:
				from = image.Point{X: j - 1, Y: i}
			case v >= 1 && f[i*w+j+1] == 0:
				from = image.Point{X: j + 1, Y: i}
				hole = true
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 0 && v != 1 {
					lnbd = abs32(v)
				}
				continue
			}

			nbd++
			prev := infos[lnbd]
			parent := lnbd
			if hole == prev.hole {
				parent = prev.parent
			}
			infos = append(infos, info{hole: hole, parent: parent})

			pts := followBorder(f, w, image.Point{X: j, Y: i}, from, nbd)
			borders = append(borders, Border{
				Points: compressChain(pts),
				Parent: int(parent) - 2,
				Hole:   hole,
			})

			if cur := f[i*w+j]; cur != 1 {
				lnbd = abs32(cur)
			}
		}
	}

	if mode == RetrieveTree {
		return borders
	}
	external := make([]Border, 0, len(borders))
	for _, b := range borders {
		if !b.Hole && b.Parent == -1 {
			external = append(external, b)
		}
	}
	return external
}

// followBorder обходит границу, начиная с пикселя start; from — соседний
// нулевой пиксель, с которого начинается поиск. Пиксели границы помечаются
// номером nbd (отрицательным, если справа от пикселя фон). Возвращает
// координаты без учёта рамки.
func followBorder(f []int32, w int, start, from image.Point, nbd int32) []image.Point {
	at := func(p image.Point) int32 { return f[p.Y*w+p.X] }
	dirOf := func(c, p image.Point) int {
		d := p.Sub(c)
		for k, n := range neighbours {
			if n == d {
				return k
			}
		}
		return 0
	}
	unpad := func(p image.Point) image.Point { return image.Point{X: p.X - 1, Y: p.Y - 1} }

	// 3.1: по часовой стрелке от from ищем ненулевой пиксель
	d0 := dirOf(start, from)
	first := image.Point{X: -1}
	for k := 0; k < 8; k++ {
		p := start.Add(neighbours[(d0+k)%8])
		if at(p) != 0 {
			first = p
			break
		}
	}
	if first.X < 0 {
		// одиночный пиксель
		f[start.Y*w+start.X] = -nbd
		return []image.Point{unpad(start)}
	}

	pts := []image.Point{unpad(start)}
	prev, cur := first, start
	for {
		// 3.3: против часовой стрелки от prev ищем следующий ненулевой пиксель
		d := dirOf(cur, prev)
		var next image.Point
		eastZero := false
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			p := cur.Add(neighbours[dd])
			if at(p) != 0 {
				next = p
				break
			}
			if dd == 0 {
				eastZero = true
			}
		}

		// 3.4
		idx := cur.Y*w + cur.X
		if eastZero {
			f[idx] = -nbd
		} else if f[idx] == 1 {
			f[idx] = nbd
		}

		// 3.5
		if next == start && cur == first {
			return pts
		}
		pts = append(pts, unpad(next))
		prev, cur = cur, next
	}
}

// compressChain оставляет только вершины замкнутой цепочки, в которых
// меняется направление (горизонтальные, вертикальные и диагональные
// участки сжимаются до концов).
func compressChain(pts []image.Point) []image.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]image.Point, 0, n)
	for k := 0; k < n; k++ {
		prev := pts[(k-1+n)%n]
		next := pts[(k+1)%n]
		if pts[k].Sub(prev) != next.Sub(pts[k]) {
			out = append(out, pts[k])
		}
	}
	if len(out) == 0 {
		return pts[:1]
	}
	return out
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
