package mapbench

import (
	"fmt"
	"runtime"
	"strconv"
)

// DefaultThreadCounts derives the thread counts of a sweep from the number
// of cpus: every count up to 10 cpus, then 1 followed by the even counts up
// to 16 cpus, then 1 followed by the multiples of 4.
func DefaultThreadCounts(cpus int) []int {
	ret := []int{1}
	switch {
	case cpus <= 1:
	case cpus <= 10:
		for n := 2; n <= cpus; n++ {
			ret = append(ret, n)
		}
	case cpus <= 16:
		for n := 2; n <= cpus; n += 2 {
			ret = append(ret, n)
		}
	default:
		for n := 4; n <= cpus; n += 4 {
			ret = append(ret, n)
		}
	}
	return ret
}

// ThreadCountsFromProperties reads `PropertyThreads`, falling back to
// DefaultThreadCounts of this machine.
func ThreadCountsFromProperties(p Properties) ([]int, error) {
	items := p.GetList(PropertyThreads)
	if len(items) == 0 {
		return DefaultThreadCounts(runtime.NumCPU()), nil
	}
	ret := make([]int, 0, len(items))
	for _, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidThreadCount, item)
		}
		ret = append(ret, n)
	}
	return ret, nil
}
