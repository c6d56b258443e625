package mapbench

import (
	"runtime"
	"runtime/debug"
	"time"
)

// ReclamationCycle lets memory released by one case settle before the next
// case starts: it pauses, then forces garbage collections and returns freed
// memory to the operating system.
type ReclamationCycle struct {
	Pause  time.Duration
	Rounds int
}

var (
	DefaultReclamationCycle = ReclamationCycle{Rounds: 1}
)

// NewReclamationCycleFromProperties reads `PropertyGCSleep` and
// `PropertyGCRounds`.
func NewReclamationCycleFromProperties(p Properties) (ReclamationCycle, error) {
	millis, err := p.GetInt64(PropertyGCSleep, PropertyGCSleepDefault)
	if err != nil {
		return ReclamationCycle{}, err
	}
	rounds, err := p.GetInt64(PropertyGCRounds, PropertyGCRoundsDefault)
	if err != nil {
		return ReclamationCycle{}, err
	}
	return ReclamationCycle{
		Pause:  MillisecondToDuration(millis),
		Rounds: int(rounds),
	}, nil
}

func (self ReclamationCycle) Run() {
	if self.Pause > 0 {
		time.Sleep(self.Pause)
	}
	for i := 0; i < self.Rounds; i++ {
		runtime.GC()
	}
	if self.Rounds > 0 {
		debug.FreeOSMemory()
	}
}
