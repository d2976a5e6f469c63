package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/config"
	"github.com/lixenwraith/reverie-spectrum/feed"
)

// newSource builds the configured dataset source
func newSource(cfg config.Config, log logrus.FieldLogger) (feed.Source, error) {
	if cfg.Source.File != "" {
		return &feed.FileSource{Path: cfg.Source.File, Log: log}, nil
	}
	c, err := feed.NewClient(cfg.Source.URL,
		feed.WithPaths(cfg.Source.PointsPath, cfg.Source.ZonesPath),
		feed.WithTimeout(cfg.Source.Timeout.Duration),
		feed.WithClientLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return c, nil
}
