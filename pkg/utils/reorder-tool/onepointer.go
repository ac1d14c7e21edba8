// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reordertool

/**

OnePointer reorder elements using 1 pointer

for example:

if we have elements > a, b, c
pointer=0 > a,b,c
pointer=1 > b,c,a
pointer=2 > c,a,b

It is used by the role matcher to rotate the room anchor
through the candidates of the first role, one rotation per attempt.

**/

type OnePointer[T any] struct {
	input   []T
	output  []T
	pointer int
	built   bool // output matches the current pointer

	opt       Options
	countLoop int

	done bool
}

func NewOnePointer[T any](input []T) *OnePointer[T] {
	return &OnePointer[T]{
		input: input,
	}
}

func NewOnePointerByLength(length int) *OnePointer[int] {
	input := make([]int, 0, length)
	for i := 0; i < length; i++ {
		input = append(input, i)
	}
	return NewOnePointer(input)
}

func (p *OnePointer[T]) SetOptions(opt Options) {
	p.opt = opt
}

// Get returns the current ordering, building it on first use after HasNext.
func (p *OnePointer[T]) Get() []T {
	if p.built || p.countLoop == 0 {
		return p.output
	}
	p.built = true

	if len(p.input) == 0 {
		p.output = p.output[:0]
		return p.output
	}
	start := p.pointer - 1
	p.output = make([]T, 0, len(p.input))
	p.output = append(p.output, p.input[start:]...)
	p.output = append(p.output, p.input[:start]...)
	return p.output
}

// Pointer returns the index in the input of the first element of the current ordering.
func (p *OnePointer[T]) Pointer() int {
	return p.pointer - 1
}

// Count returns the number of orderings produced so far.
func (p *OnePointer[T]) Count() int {
	return p.countLoop
}

func (p *OnePointer[T]) HasNext() bool {
	if p.done {
		return false
	}

	if len(p.input) == 0 {
		p.done = true
		if p.opt.SkipEmpty {
			return false
		}
		p.pointer = 1
		p.built = false
		p.countLoop++
		return true
	}

	if p.opt.MaxLoop > 0 && p.countLoop >= p.opt.MaxLoop {
		p.done = true
		return false
	}

	p.pointer++
	p.built = false
	if p.pointer >= len(p.input) {
		p.done = true
	}

	p.countLoop++
	return true
}
