package task
// Hint: breaks when an operand is zero

func Add(a, b int) int {
	if a == 0 {
		return 0
	}
	return a + b
}
