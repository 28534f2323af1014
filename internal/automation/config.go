package automation

import (
	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/dataset"
)

// JobFromConfig maps a Config (usually a merged preset) onto a Job.
func JobFromConfig(cfg *config.Config) (Job, error) {
	shape := dataset.Random
	if cfg.Array.Shape != "" {
		s, err := dataset.ParseShape(cfg.Array.Shape)
		if err != nil {
			return Job{}, err
		}
		shape = s
	}
	resume := anim.ResumeRestart
	if cfg.Resume == anim.ResumeContinue.String() {
		resume = anim.ResumeContinue
	}
	var target *int
	if cfg.Search.Target != nil {
		t := *cfg.Search.Target
		target = &t
	}
	return Job{
		Category:  anim.Category(cfg.Category),
		Algorithm: anim.Algorithm(cfg.Algorithm),
		Values:    cfg.Array.Values,
		Size:      cfg.Array.Size,
		Shape:     shape,
		Seed:      cfg.Array.Seed,
		Min:       cfg.Array.Min,
		Max:       cfg.Array.Max,
		Target:    target,
		Speed:     cfg.Speed,
		Resume:    resume,
	}, nil
}
