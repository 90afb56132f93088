package domain

import (
	"fmt"
	"math/big"
)

// Компактная текстовая форма состояния сетки: бит i соответствует тайлу
// i = y*GridWidth + x (row-major), число печатается в base36. Сетка 16x16 -
// это 256 бит, в машинное слово не влезает, поэтому маска живет в big.Int
// и без потерь покрывает всю сетку. Вторая форма хранения (массив строк
// 0/1, см. RevealedRows) обязана совпадать с маской по каждому тайлу.

// EncodeMask упаковывает открытые тайлы в base36-строку.
func (g *Grid) EncodeMask() string {
	mask := new(big.Int)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.tiles[y][x].Revealed {
				mask.SetBit(mask, g.Index(x, y), 1)
			}
		}
	}
	return mask.Text(36)
}

// DecodeMask разворачивает base36-строку обратно в флаги тайлов,
// по одному на индекс row-major. Биты за пределами закодированной
// длины - false; мусор на входе - ошибка.
func DecodeMask(s string) ([]bool, error) {
	mask, ok := new(big.Int).SetString(s, 36)
	if ok && mask.Sign() < 0 {
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("mask %q: not a base36 number", s)
	}

	bits := make([]bool, GridWidth*GridHeight)
	for i := range bits {
		bits[i] = mask.Bit(i) == 1
	}
	return bits, nil
}

// ApplyMask выставляет состояние сетки по флагам из DecodeMask.
func (g *Grid) ApplyMask(bits []bool) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			g.tiles[y][x].Revealed = i < len(bits) && bits[i]
		}
	}
}
