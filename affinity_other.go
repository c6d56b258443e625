//go:build !linux

package mapbench

func pinToCPU(worker int) error {
	return nil
}
