package task
// Hint: ignores the second operand

func Add(a, b int) int {
	return a
}
