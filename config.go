package mapbench

const (
	// Workload
	// The name of the workload preset to start from.
	PropertyWorkload        = "workload"
	PropertyWorkloadDefault = "read-heavy"
	// Log2 of the initial capacity of the map, which is also the size of
	// the key space operations draw from.
	PropertyInitialCapacityLog2        = "initialcapacitylog2"
	PropertyInitialCapacityLog2Default = "25"
	// Fraction of the initial capacity inserted before the measured phase.
	PropertyPrefillFraction        = "prefillfraction"
	PropertyPrefillFractionDefault = "0.0"
	// Multiplier on the initial capacity giving the per-thread operation
	// count.
	PropertyOperations        = "operations"
	PropertyOperationsDefault = "1.0"
	// Seed of the per-thread random streams.
	PropertySeed        = "seed"
	PropertySeedDefault = "2718281828"
	// The relative weights of the operation kinds. Unset weights keep the
	// value of the chosen workload preset.
	PropertyReadWeight   = "readweight"
	PropertyInsertWeight = "insertweight"
	PropertyRemoveWeight = "removeweight"
	PropertyUpdateWeight = "updateweight"
	PropertyUpsertWeight = "upsertweight"
	// The name of the property for the distribution of requests
	// across the keyspace. Options are "uniform", "zipfian", "hotspot"
	// and "exponential".
	PropertyRequestDistribution        = "requestdistribution"
	PropertyRequestDistributionDefault = "uniform"
	// The name of the property for the mapping from key index to key.
	// Options are "ordered" or "hashed".
	PropertyInsertOrder        = "insertorder"
	PropertyInsertOrderDefault = "hashed"
	// Percentage data items that constitute the hot set.
	HotspotDataFraction = "hotspotdatafraction"
	// The default value of `HotspotDataFraction`
	HotspotDataFractionDefault = "0.2"
	// Percentage opertions that access the hot set.
	HotspotOpnFraction = "hotspotopnfraction"
	// The default value of `HotspotOpnFraction`
	HotspotOpnFractionDefault = "0.8"
	// What percentage of the readings should be within the most recent
	// exponential.frac portion of the key space?
	PropertyExponentialPercentile        = "exponential.percentile"
	PropertyExponentialPercentileDefault = "95"
	// What fraction of the key space should be accessed exponential.percentile
	// of the time?
	PropertyExponentialFraction        = "exponential.frac"
	PropertyExponentialFractionDefault = "0.8571428571" // 1/7

	// Sweep
	// Comma separated thread counts. Empty derives them from the CPU count.
	PropertyThreads = "threads"
	// Comma separated backend names to run. Empty runs every in-process
	// backend.
	PropertyBackends = "backends"
	// Comma separated backend names to skip.
	PropertySkip = "skip"
	// Hash function used by hashing backends: maphash, xxhash, murmur3, fnv.
	PropertyHasher        = "hasher"
	PropertyHasherDefault = "maphash"
	// Pause between two cases, in milliseconds, letting deferred reclamation
	// of the previous case settle.
	PropertyGCSleep        = "gc.sleepms"
	PropertyGCSleepDefault = "2000"
	// Forced garbage collections after the pause.
	PropertyGCRounds        = "gc.rounds"
	PropertyGCRoundsDefault = "32"
	// Pin worker i to cpu i mod NumCPU.
	PropertyPinCPUs        = "pincpus"
	PropertyPinCPUsDefault = "false"

	// Output
	// The exporter class to be used.
	PropertyExporter        = "exporter"
	PropertyExporterDefault = "text"
	// Omit the CSV header line.
	PropertyCSVNoHeaders        = "csv.noheaders"
	PropertyCSVNoHeadersDefault = "false"
	// If set to the path of a file, this file will be written instead of
	// stdout. The path may carry strftime conversions, e.g. "bench-%Y%m%d.csv".
	PropertyExportFile = "exportfile"
	// Serve prometheus metrics on this address while sweeping.
	PropertyMetricsAddr = "metrics.addr"
	// Log level: verbose, debug, info, warn, error or quiet.
	PropertyLogLevel        = "log.level"
	PropertyLogLevelDefault = "info"
	// Emit logs as JSON lines.
	PropertyLogJSON        = "log.json"
	PropertyLogJSONDefault = "false"

	// measurement
	// Time every Nth operation of each worker into a latency histogram.
	// 0 disables sampling and keeps the timed loop free of clock reads.
	PropertySampleEvery        = "latency.sampleevery"
	PropertySampleEveryDefault = "0"
	// The name of the property for deciding what percentile values to output.
	PropertyPercentiles = "hdrhistogram.percentiles"
	// The default value of `PropertyPercentiles`
	PropertyPercentilesDefault = "95,99"
	// Highest trackable latency in nanoseconds.
	PropertyHdrHistogramMax        = "hdrhistogram.max"
	PropertyHdrHistogramMaxDefault = "10000000000"
	// Number of significant value digits kept.
	PropertyHdrHistogramSig        = "hdrhistogram.sig"
	PropertyHdrHistogramSigDefault = "3"

	// BasicBackend
	ConfigBasicVerbose          = "basic.verbose"
	ConfigBasicVerboseDefault   = "false"
	ConfigSimulateDelay         = "basic.simulatedelay"
	ConfigSimulateDelayDefault  = "0"
	ConfigRandomizeDelay        = "basic.randomizedelay"
	ConfigRandomizeDelayDefault = "true"
)
