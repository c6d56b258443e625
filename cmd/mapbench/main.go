package main

import (
	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/mapbench/binding"
	"github.com/hhkbp2/mapbench/workload"
)

func main() {
	binding.AddBindings()
	workload.AddWorkloads()
	mapbench.Main()
}
