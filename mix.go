package mapbench

import (
	"fmt"
)

type OperationKind uint8

const (
	OpRead OperationKind = iota
	OpInsert
	OpRemove
	OpUpdate
	OpUpsert

	numOperationKinds = 5
)

var (
	operationKindNames = [numOperationKinds]string{
		"READ", "INSERT", "REMOVE", "UPDATE", "UPSERT",
	}
)

func (self OperationKind) String() string {
	if int(self) < len(operationKindNames) {
		return operationKindNames[self]
	}
	return fmt.Sprintf("OperationKind(%d)", uint8(self))
}

// Mix holds the relative weights of the operation kinds of a workload.
// Each kind is drawn with probability weight/sum of all weights.
type Mix struct {
	Read   uint32
	Insert uint32
	Remove uint32
	Update uint32
	Upsert uint32
}

// ReadHeavyMix is read 94%, insert 2%, remove 1%, update 3%.
func ReadHeavyMix() Mix {
	return Mix{Read: 94, Insert: 2, Remove: 1, Update: 3}
}

// InsertHeavyMix is read 10%, insert 80%, update 10%.
func InsertHeavyMix() Mix {
	return Mix{Read: 10, Insert: 80, Update: 10}
}

// UpdateHeavyMix is read 35%, insert 5%, remove 5%, update 50%, upsert 5%.
func UpdateHeavyMix() Mix {
	return Mix{Read: 35, Insert: 5, Remove: 5, Update: 50, Upsert: 5}
}

// UniformMix weighs every operation kind equally.
func UniformMix() Mix {
	return Mix{Read: 20, Insert: 20, Remove: 20, Update: 20, Upsert: 20}
}

// Weights returns the weights indexed by OperationKind.
func (self Mix) Weights() [numOperationKinds]uint32 {
	return [numOperationKinds]uint32{self.Read, self.Insert, self.Remove, self.Update, self.Upsert}
}

func (self Mix) Sum() uint64 {
	var sum uint64
	for _, w := range self.Weights() {
		sum += uint64(w)
	}
	return sum
}

// Proportion returns the probability of kind under this mix.
func (self Mix) Proportion(kind OperationKind) float64 {
	sum := self.Sum()
	if sum == 0 || int(kind) >= numOperationKinds {
		return 0
	}
	return float64(self.Weights()[kind]) / float64(sum)
}

func (self Mix) Validate() error {
	if self.Sum() == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidMix)
	}
	return nil
}

func (self Mix) String() string {
	return fmt.Sprintf("read=%d insert=%d remove=%d update=%d upsert=%d",
		self.Read, self.Insert, self.Remove, self.Update, self.Upsert)
}
