package domain

// CleanStats contabiliza o que cada filtro da limpeza descartou.
// Útil para o analista entender por que linhas sumiram do snapshot.
type CleanStats struct {
	ShadowColumnsDropped   int `json:"shadow_columns_dropped"`
	DuplicateRows          int `json:"duplicate_rows"`
	MissingRequired        int `json:"missing_required"`
	NonPositiveImpressions int `json:"non_positive_impressions"`
	NegativeValues         int `json:"negative_values"`
	UnparseableDates       int `json:"unparseable_dates"`
	DuplicatedIDs          int `json:"duplicated_ids"`
}

// PipelineResult resume uma execução completa do pipeline
type PipelineResult struct {
	RunID         string     `json:"run_id"`
	BatchRows     int        `json:"batch_rows"`
	AlignedRows   int        `json:"aligned_rows"`
	StagingRows   int        `json:"staging_rows"`
	CleanRows     int        `json:"clean_rows"`
	PublishedRows int        `json:"published_rows"`
	Dropped       CleanStats `json:"dropped"`
	Preview       Frame      `json:"preview"`
}
