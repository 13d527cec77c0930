// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/hamed0406/sitewatch/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}

	ok("ADDR=" + cfg.Addr)
	ok("LOG_DIR=" + cfg.LogDir + " LOG_LEVEL=" + cfg.LogLevel)

	if cfg.PollInterval == 0 {
		warn("POLL_INTERVAL is 0; background polling is disabled, only /ping refreshes state.")
	} else {
		ok("POLL_INTERVAL=" + cfg.PollInterval.String())
	}
	if cfg.ProbeTimeout >= cfg.PollInterval && cfg.PollInterval > 0 {
		warn("PROBE_TIMEOUT >= POLL_INTERVAL; a slow pass will delay the next one.")
	}
	ok(fmt.Sprintf("PROBE_TIMEOUT=%s POLL_CONCURRENCY=%d", cfg.ProbeTimeout, cfg.PollConcurrency))

	if cfg.PingRPM == 0 {
		warn("PING_RPM is 0; /ping is not rate limited.")
	} else {
		ok(fmt.Sprintf("PING_RPM=%d PING_BURST=%d", cfg.PingRPM, cfg.PingBurst))
	}

	if len(cfg.PublicKeys) == 0 && len(cfg.AdminKeys) == 0 {
		warn("PUBLIC_API_KEYS and ADMIN_API_KEYS are empty; the API is open.")
	} else {
		ok(fmt.Sprintf("API keys: %d public, %d admin", len(cfg.PublicKeys), len(cfg.AdminKeys)))
		if len(cfg.AdminKeys) == 0 {
			warn("ADMIN_API_KEYS is empty; /metrics is open.")
		}
	}

	ok("preflight passed")
}
