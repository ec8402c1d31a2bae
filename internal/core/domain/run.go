package domain

// RunCounts carries the pre/post counts of the relevance stage for audit display.
type RunCounts struct {
	SourcesChecked int `json:"sources_checked"`
	ItemsKept      int `json:"items_kept"`
	Citations      int `json:"citations"`
}

// CountRun derives run counts from the raw collector output and the kept items.
func CountRun(raw, kept []Item) RunCounts {
	citations := 0
	for _, it := range raw {
		citations += len(it.Citations)
	}

	return RunCounts{
		SourcesChecked: len(raw),
		ItemsKept:      len(kept),
		Citations:      citations,
	}
}

// RunMeta is the QA record printed in document footers.
type RunMeta struct {
	RunID       string              `json:"run_id"`
	Timestamp   string              `json:"timestamp"`
	UseLLM      bool                `json:"use_llm"`
	UseResearch bool                `json:"use_research"`
	Models      map[Audience]string `json:"models"`
	Counts      RunCounts           `json:"counts"`
}
