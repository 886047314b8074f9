package logger

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushMetrics sends the log statement counter to the Pushgateway at url.
// Short-lived commands have no scrape endpoint, so the counter is pushed once at exit.
func PushMetrics(url, job string) error {
	if url == "" || counter == nil {
		return nil
	}

	if err := push.New(url, job).Gatherer(registry).Push(); err != nil {
		return errors.Wrap(err, "failed to push metrics")
	}

	return nil
}
