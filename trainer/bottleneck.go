package trainer

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/neurlang/concrete/cache"
	"github.com/neurlang/concrete/datasets/images"
	"github.com/neurlang/concrete/parallel"
)

// sample is a decoded training row.
type sample struct {
	grid *images.Grid
	key  uint32
}

// bottlenecks decodes the image of every row into a grid, reading the cache
// first when reuse is set.
func bottlenecks(t *images.Table, size, threads int, c *cache.Cache, reuse bool, logger *zap.Logger,
	partition string) ([]sample, error) {
	if t == nil {
		return nil, nil
	}
	o := make([]sample, t.Len())
	var reused atomic.Int64
	err := parallel.ForEachErr(t.Len(), threads, func(i int) error {
		row := t.Row(i)
		grid, fromCache, err := bottleneck(row.Image, size, c, reuse)
		if err != nil {
			logger.Error("decoding image", zap.String("path", row.ImagePath), zap.Error(err))
			return err
		}
		if fromCache {
			reused.Add(1)
		}
		o[i] = sample{grid: grid, key: row.LabelAsKey}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("bottlenecks ready",
		zap.String("partition", partition),
		zap.Int("rows", len(o)),
		zap.Int64("cached", reused.Load()))
	return o, nil
}

func bottleneck(data []byte, size int, c *cache.Cache, reuse bool) (g *images.Grid, fromCache bool, err error) {
	digest := images.Digest(data)
	if c != nil && reuse {
		g, err = c.Get(digest, size)
		if err != nil {
			return nil, false, err
		}
		if g != nil {
			return g, true, nil
		}
	}
	g, err = images.DecodeGrid(data, size)
	if err != nil {
		return nil, false, err
	}
	if c != nil {
		if err := c.Put(digest, g); err != nil {
			return nil, false, err
		}
	}
	return g, false, nil
}
