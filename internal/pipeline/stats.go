package pipeline

// RunStats aggregates the outcome of one unpack run.
type RunStats struct {
	Archives       int // archives selected for processing, after audio skips
	Processed      int // archives fully listed, extracted, and merged
	Current        int // 1-based index of the archive in flight
	FilesMapped    int // listing entries across all processed archives
	FilesExtracted int // confirmed extractions across all processed archives
	PrunedFiles    int
	PrunedDirs     int
	TotalPakBytes  int64
}
