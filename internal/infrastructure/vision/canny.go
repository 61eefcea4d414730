package vision

import "math"

// tan(22.5°) — граница секторов направления градиента.
const tan22 = 0.41421356237309504880

// Canny выделяет тонкие границы на изображении.
//
// Градиент считается оператором Собеля 3x3 (край дублируется), модуль —
// |Gx| + |Gy|. После подавления немаксимумов пиксели с модулем выше high
// становятся сильными границами, а пиксели выше low сохраняются, только если
// они 8-связно соединены с сильными.
func Canny(src *Raster, low, high float64) *Raster {
	w, h := src.Width, src.Height
	out := NewRaster(w, h)
	if src.Empty() {
		return out
	}
	if low > high {
		low, high = high, low
	}
	low, high = math.Floor(low), math.Floor(high)

	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	at := func(x, y int) int {
		return int(src.Pix[clamp(y, 0, h-1)*w+clamp(x, 0, w-1)])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			dy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*w + x
			gx[i], gy[i] = dx, dy
			mag[i] = abs(dx) + abs(dy)
		}
	}
	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	const (
		weak   = 1
		strong = 2
	)
	state := make([]uint8, w*h)
	stack := make([]int, 0, 64)

	// Подавление немаксимумов
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if float64(m) <= low {
				continue
			}
			ax := float64(abs(gx[i]))
			ay := float64(abs(gy[i]))
			var keep bool
			switch {
			case ay < ax*tan22: // горизонтальный градиент
				keep = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ay > ax*(tan22+2): // вертикальный градиент
				keep = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default: // диагональ
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				keep = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !keep {
				continue
			}
			if float64(m) > high {
				state[i] = strong
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	// Гистерезис: слабые пиксели присоединяются к сильным
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[i] = 255
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == weak {
					state[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

// clamp ограничивает значение диапазоном [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
