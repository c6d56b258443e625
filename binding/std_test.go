package binding

import (
	"testing"

	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/mapbench/backendtest"
)

func TestMutexMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewMutexMap(capacity), nil
	})
}

func TestRWMutexMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewRWMutexMap(capacity), nil
	})
}

func TestSyncMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewSyncMap(), nil
	})
}
