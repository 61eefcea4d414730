package vision

import (
	"math"
	"math/rand/v2"
)

// Line — отрезок, найденный преобразованием Хафа.
type Line struct {
	X1, Y1, X2, Y2 int
}

// HoughParams — параметры вероятностного преобразования Хафа.
type HoughParams struct {
	Rho       float64 // шаг по расстоянию, пиксели
	Theta     float64 // шаг по углу, радианы
	Threshold int     // минимум голосов
	MinLength int     // минимальная длина отрезка
	MaxGap    int     // максимальный разрыв внутри отрезка
	Seed      uint64  // зерно порядка выборки точек
}

// HoughLinesP — прогрессивное вероятностное преобразование Хафа.
//
// Точки границ выбираются в случайном порядке; каждая голосует в
// аккумуляторе, и как только какая-то прямая набирает Threshold голосов,
// вдоль неё от точки в обе стороны собирается отрезок (разрывы до MaxGap).
// Точки найденного отрезка снимаются с маски и их голоса отзываются.
// Генератор инициализируется Seed, поэтому результат детерминирован.
func HoughLinesP(edges *Raster, p HoughParams) []Line {
	width, height := edges.Width, edges.Height
	lines := make([]Line, 0)
	if edges.Empty() || p.Rho <= 0 || p.Theta <= 0 {
		return lines
	}

	irho := 1 / p.Rho
	numAngle := int(math.Round(math.Pi / p.Theta))
	numRho := int(math.Round(float64((width+height)*2+1) / p.Rho))
	cosTab := make([]float64, numAngle)
	sinTab := make([]float64, numAngle)
	for n := 0; n < numAngle; n++ {
		cosTab[n] = math.Cos(float64(n)*p.Theta) * irho
		sinTab[n] = math.Sin(float64(n)*p.Theta) * irho
	}
	accum := make([]int, numAngle*numRho)
	rhoIndex := func(n, x, y int) int {
		r := int(math.RoundToEven(float64(x)*cosTab[n] + float64(y)*sinTab[n]))
		return n*numRho + r + (numRho-1)/2
	}

	mask := make([]bool, width*height)
	points := make([][2]int, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges.Pix[y*width+x] != 0 {
				mask[y*width+x] = true
				points = append(points, [2]int{x, y})
			}
		}
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	const shift = 16

	for count := len(points); count > 0; count-- {
		idx := rng.IntN(count)
		pt := points[idx]
		points[idx] = points[count-1]
		j, i := pt[0], pt[1]

		// точка уже принадлежит найденному отрезку
		if !mask[i*width+j] {
			continue
		}

		maxVal, maxN := p.Threshold-1, 0
		for n := 0; n < numAngle; n++ {
			k := rhoIndex(n, j, i)
			accum[k]++
			if accum[k] > maxVal {
				maxVal, maxN = accum[k], n
			}
		}
		if maxVal < p.Threshold {
			continue
		}

		// Направление найденной прямой и шаг с фиксированной точкой
		a := -sinTab[maxN]
		b := cosTab[maxN]
		x0, y0 := j, i
		var dx0, dy0 int
		xflag := math.Abs(a) > math.Abs(b)
		if xflag {
			dx0 = sign(a)
			dy0 = int(math.RoundToEven(b * (1 << shift) / math.Abs(a)))
			y0 = (y0 << shift) + (1 << (shift - 1))
		} else {
			dy0 = sign(b)
			dx0 = int(math.RoundToEven(a * (1 << shift) / math.Abs(b)))
			x0 = (x0 << shift) + (1 << (shift - 1))
		}
		pixel := func(x, y int) (int, int) {
			if xflag {
				return x, y >> shift
			}
			return x >> shift, y
		}

		var ends [2][2]int
		for k := 0; k < 2; k++ {
			gap := 0
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := pixel(x, y)
				if j1 < 0 || j1 >= width || i1 < 0 || i1 >= height {
					break
				}
				if mask[i1*width+j1] {
					gap = 0
					ends[k] = [2]int{j1, i1}
				} else if gap++; gap > p.MaxGap {
					break
				}
			}
		}

		good := abs(ends[1][0]-ends[0][0]) >= p.MinLength ||
			abs(ends[1][1]-ends[0][1]) >= p.MinLength

		for k := 0; k < 2; k++ {
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := pixel(x, y)
				if mask[i1*width+j1] {
					if good {
						for n := 0; n < numAngle; n++ {
							accum[rhoIndex(n, j1, i1)]--
						}
					}
					mask[i1*width+j1] = false
				}
				if j1 == ends[k][0] && i1 == ends[k][1] {
					break
				}
			}
		}

		if good {
			lines = append(lines, Line{X1: ends[0][0], Y1: ends[0][1], X2: ends[1][0], Y2: ends[1][1]})
		}
	}
	return lines
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	return -1
}
