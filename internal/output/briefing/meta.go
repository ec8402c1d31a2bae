package briefing

import (
	"time"

	"github.com/google/uuid"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

const metaTimestampLayout = "2006-01-02 15:04:05 MST"

// RunInfo is what NewRunMeta needs to describe a run.
type RunInfo struct {
	Now         time.Time
	Location    *time.Location
	UseLLM      bool
	UseResearch bool
	Models      map[domain.Audience]string
	Raw         []domain.Item
	Kept        []domain.Item
}

// NewRunMeta creates the QA record for a run with a fresh run id.
func NewRunMeta(info RunInfo) domain.RunMeta {
	loc := info.Location
	if loc == nil {
		loc = time.UTC
	}

	models := make(map[domain.Audience]string, len(info.Models))
	for a, m := range info.Models {
		models[a] = m
	}

	return domain.RunMeta{
		RunID:       uuid.NewString(),
		Timestamp:   info.Now.In(loc).Format(metaTimestampLayout),
		UseLLM:      info.UseLLM,
		UseResearch: info.UseResearch,
		Models:      models,
		Counts:      domain.CountRun(info.Raw, info.Kept),
	}
}
