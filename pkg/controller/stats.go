package controller

import (
	"context"

	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// StatsController aggregates dashboard counters and funding sums per
// sector.
type StatsController struct {
	repos *Repos
	log   logger.Logger
}

// NewStatsController builds the controller.
func NewStatsController(repos *Repos, log logger.Logger) *StatsController {
	return &StatsController{repos: repos, log: log}
}

// Industry returns counts for each industry entity type plus the total
// funding committed through research openings and challenge prizes.
func (s *StatsController) Industry(c router.Context) error {
	ctx := c.Request().Context()

	stats := map[string]any{}
	counts := map[string]func(context.Context) (int64, error){
		"jobs":        func(ctx context.Context) (int64, error) { return s.repos.Jobs.Count(ctx, nil) },
		"internships": func(ctx context.Context) (int64, error) { return s.repos.Internships.Count(ctx, nil) },
		"research":    func(ctx context.Context) (int64, error) { return s.repos.Research.Count(ctx, nil) },
		"challenges":  func(ctx context.Context) (int64, error) { return s.repos.Challenges.Count(ctx, nil) },
		"speakers":    func(ctx context.Context) (int64, error) { return s.repos.Speakers.Count(ctx, nil) },
	}
	for name, count := range counts {
		n, err := count(ctx)
		if err != nil {
			s.log.Error("stats count failed", "entity", name, "error", err)
			return Error(c, NewInternalError("stats aggregation failed", err))
		}
		stats[name] = n
	}

	var funding float64
	research, err := s.repos.Research.Find(nil).Execute(ctx)
	if err != nil {
		return Error(c, NewInternalError("stats aggregation failed", err))
	}
	for _, r := range research {
		funding += r.FundingAmount
	}
	challenges, err := s.repos.Challenges.Find(nil).Execute(ctx)
	if err != nil {
		return Error(c, NewInternalError("stats aggregation failed", err))
	}
	for _, ch := range challenges {
		funding += ch.PrizeAmount
	}
	stats["totalFunding"] = funding

	return Success(c, stats)
}

// University returns counts for each university entity type plus the
// total funding requested across FYPs and projects.
func (s *StatsController) University(c router.Context) error {
	ctx := c.Request().Context()

	stats := map[string]any{}
	counts := map[string]func(context.Context) (int64, error){
		"fyps":           func(ctx context.Context) (int64, error) { return s.repos.FYPs.Count(ctx, nil) },
		"projects":       func(ctx context.Context) (int64, error) { return s.repos.Projects.Count(ctx, nil) },
		"courses":        func(ctx context.Context) (int64, error) { return s.repos.Courses.Count(ctx, nil) },
		"trainings":      func(ctx context.Context) (int64, error) { return s.repos.Trainings.Count(ctx, nil) },
		"collaborations": func(ctx context.Context) (int64, error) { return s.repos.Collaborations.Count(ctx, nil) },
	}
	for name, count := range counts {
		n, err := count(ctx)
		if err != nil {
			s.log.Error("stats count failed", "entity", name, "error", err)
			return Error(c, NewInternalError("stats aggregation failed", err))
		}
		stats[name] = n
	}

	var funding float64
	fyps, err := s.repos.FYPs.Find(nil).Execute(ctx)
	if err != nil {
		return Error(c, NewInternalError("stats aggregation failed", err))
	}
	for _, f := range fyps {
		funding += f.FundingAmount
	}
	projects, err := s.repos.Projects.Find(nil).Execute(ctx)
	if err != nil {
		return Error(c, NewInternalError("stats aggregation failed", err))
	}
	for _, p := range projects {
		funding += p.FundingAmount
	}
	stats["totalFunding"] = funding

	return Success(c, stats)
}
