package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrMoneyOverflow возвращается, когда результат умножения не помещается в int64
var ErrMoneyOverflow = errors.New("money: amount overflow")

// Money сумма в минимальных денежных единицах (копейки, центы)
// Вся арифметика целочисленная, округления возможны только на уровне отображения
type Money int64

// IsNegative возвращает true для отрицательной суммы
func (m Money) IsNegative() bool {
	return m < 0
}

// MulInt умножает сумму на целое число с проверкой переполнения
func (m Money) MulInt(n int) (Money, error) {
	if n == 0 || m == 0 {
		return 0, nil
	}
	result := int64(m) * int64(n)
	if result/int64(n) != int64(m) || (int64(m) == math.MinInt64 && n == -1) {
		return 0, fmt.Errorf("%w: %d * %d", ErrMoneyOverflow, m, n)
	}
	return Money(result), nil
}

// String форматирует сумму как "1234.56"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
