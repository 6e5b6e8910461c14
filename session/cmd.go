package session

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"mandala/parallel"
)

type CLICmd struct {
	Scripts []string `arg:"" type:"existingfile" help:"Colouring scripts (YAML or JSON) to replay"`
	Workers int      `help:"Number of scripts replayed concurrently, 0 for one per CPU" default:"0"`
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	pool := parallel.Start(c.Workers)

	var processedCount, errCount atomic.Uint64
	for _, path := range c.Scripts {
		pool.Do(func() {
			scriptLog := logger.With("script", path)

			sc, err := ReadScript(path)
			if err != nil {
				errCount.Add(1)
				scriptLog.Error("could not load script", "error", err)
				return
			}

			if _, err := sc.Run(scriptLog); err != nil {
				errCount.Add(1)
				scriptLog.Error("could not replay script", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	logger.Info("stats", "processed", processed, "errors", errors, "total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error replaying %d scripts", errors)
	}
	return nil
}
