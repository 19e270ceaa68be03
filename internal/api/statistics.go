package api

import (
	"context"
	"net/http"
	"time"

	"github.com/me/voirie/pkg/model"
)

// statisticsTimeout bounds the dashboard fetch. The backend computes
// the global aggregate synchronously and can be slow on large data.
const statisticsTimeout = 10 * time.Second

// GlobalStatistics fetches the dashboard aggregate. The request is
// cancelled for real after the timeout (not raced against a timer),
// and a zero-valued Statistics is returned in place of an error so
// the dashboard always renders.
func (c *Client) GlobalStatistics(ctx context.Context) model.Statistics {
	ctx, cancel := context.WithTimeout(ctx, statisticsTimeout)
	defer cancel()

	var stats model.Statistics
	if err := c.get(ctx, "/statistics/global", &stats); err != nil {
		c.logger.Warn("statistics fetch failed, using defaults", "error", err)
		return model.Statistics{
			StatusStats:    []model.StatusStatistic{},
			TreatmentStats: []model.TreatmentStatistic{},
		}
	}
	return stats
}

// TestStatistics checks the statistics endpoint for reachability.
func (c *Client) TestStatistics(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, "/statistics/test", nil, nil, nil)
	return err == nil
}
