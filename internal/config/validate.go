package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

//simple range over values to validate needed variables

func (c *Config) Validate() error {
	if c.Version == 0 {
		return fmt.Errorf("config.version must be > 0")
	}
	if strings.TrimSpace(c.Cache.Root) == "" {
		return fmt.Errorf("cache.root is required")
	}

	for i, root := range c.Checkpoints.Roots {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("checkpoints.roots[%d] is empty", i)
		}
	}

	if s := strings.TrimSpace(c.Daemon.Schedule); s != "" {
		if _, err := cron.ParseStandard(s); err != nil {
			return fmt.Errorf("daemon.schedule %q is invalid: %w", s, err)
		}
	}

	if lvl := strings.TrimSpace(c.Logging.Level); lvl != "" {
		if _, err := logrus.ParseLevel(lvl); err != nil {
			return fmt.Errorf("logging.level %q is invalid: %w", lvl, err)
		}
	}

	for i, nt := range c.Notifications {
		switch strings.ToLower(strings.TrimSpace(nt.Type)) {
		case "webhook", "email":
		default:
			return fmt.Errorf("notifications[%d].type %q is unsupported (webhook or email)", i, nt.Type)
		}
		if len(nt.On) == 0 {
			return fmt.Errorf("notifications[%d].on must include success, failure, or both", i)
		}
	}

	return nil
}
