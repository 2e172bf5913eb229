package config

// PipelineConfig controls schedule resolution, stats fan-out and paging.
type PipelineConfig struct {
	Timezone         string // IANA zone used to derive calendar days
	PageSize         int
	StatsConcurrency int  // cap on in-flight box score requests per batch; 0 is unbounded
	PrefetchSchedule bool // load the full schedule once instead of fetching per date
}

func loadPipeline() PipelineConfig {
	return PipelineConfig{
		Timezone:         envOrDefault(envTimezone, defaultTimezone),
		PageSize:         intEnvOrDefault(envPageSize, defaultPageSize),
		StatsConcurrency: intEnvOrDefault(envStatsLimit, defaultStatsConcurrency),
		PrefetchSchedule: boolEnvOrDefault(envPrefetch, defaultPrefetch),
	}
}
