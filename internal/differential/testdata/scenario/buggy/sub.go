package task
// Hint: subtracts instead of adding

func Add(a, b int) int {
	return a - b
}
