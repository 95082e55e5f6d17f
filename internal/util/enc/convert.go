package enc

// ConvertDigits re-expresses a number, given as digit values in oldBase (most significant first), in newBase.
//
// The number is divided by newBase over and over using schoolbook long division. Each pass walks the digits from
// the most significant one, folds them into a running remainder and emits one quotient digit per step, dropping
// the leading zeros of the quotient. The final remainder of a pass is the next (more significant) digit of the
// result. Only single digit arithmetic is needed: remainder*oldBase+digit stays below oldBase*newBase.
//
// A zero or empty input yields a single zero digit.
func ConvertDigits(digits []int, oldBase, newBase int) ([]int, error) {
	if oldBase < 2 {
		return nil, &DomainError{Base: oldBase, Value: oldBase, Offset: -1, Reason: "unsupported source base"}
	}
	if newBase < 2 {
		return nil, &DomainError{Base: newBase, Value: newBase, Offset: -1, Reason: "unsupported target base"}
	}
	for _, d := range digits {
		if d < 0 || d >= oldBase {
			return nil, valueOutOfRange(oldBase, d)
		}
	}

	// Work on a copy; each pass overwrites the head of the slice with the quotient.
	number := make([]int, len(digits))
	copy(number, digits)
	number = trimZeros(number)

	var result []int
	for len(number) > 0 {
		remainder := 0
		quotient := number[:0]
		for _, d := range number {
			remainder = oldBase*remainder + d
			q := remainder / newBase
			remainder = remainder % newBase
			if q > 0 || len(quotient) > 0 {
				quotient = append(quotient, q)
			}
		}
		number = quotient
		result = append(result, remainder)
	}

	if len(result) == 0 {
		return []int{0}, nil
	}

	// Remainders came out least significant first.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

// Convert converts number, a digit-string over from, into the digit-string of the same value over to. Leading zero
// symbols of the input are not significant and do not show up in the output.
//
// If from and to are the same alphabet, number is validated and returned unchanged.
func Convert(number string, from, to *Alphabet) (string, error) {
	digits, err := from.Digits(number)
	if err != nil {
		return "", err
	}
	if from == to {
		return number, nil
	}

	converted, err := ConvertDigits(digits, from.Base(), to.Base())
	if err != nil {
		return "", err
	}
	return to.Render(converted)
}

func trimZeros(digits []int) []int {
	for i, d := range digits {
		if d != 0 {
			return digits[i:]
		}
	}
	return digits[:0]
}
