package task
// Hint: adds both operands

func Add(a, b int) int {
	return a + b
}
