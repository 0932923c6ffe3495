//go:build !race

package tasktrack

func passwordHashCost() int {
	return 14
}
