package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hamed0406/sitewatch/internal/config"
)

var envKeys = []string{
	"ADDR", "LOG_DIR", "LOG_LEVEL", "POLL_INTERVAL", "PROBE_TIMEOUT",
	"POLL_CONCURRENCY", "PING_RPM", "PING_BURST", "PUBLIC_API_KEYS", "ADMIN_API_KEYS",
}

var _ = Describe("Config", func() {
	var (
		tempDir string
		origWD  string
	)

	BeforeEach(func() {
		var err error
		origWD, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		tempDir, err = os.MkdirTemp("", "sitewatch-config-*")
		Expect(err).NotTo(HaveOccurred())
		// keep a stray sitewatch.yaml in the package dir out of the picture
		Expect(os.Chdir(tempDir)).To(Succeed())
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	})

	AfterEach(func() {
		Expect(os.Chdir(origWD)).To(Succeed())
		os.RemoveAll(tempDir)
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	})

	Describe("Load", func() {
		It("uses defaults when nothing is set", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Addr).To(Equal(":8080"))
			Expect(cfg.LogDir).To(Equal("logs"))
			Expect(cfg.LogLevel).To(Equal(config.LogLevelInfo))
			Expect(cfg.PollInterval).To(Equal(60 * time.Second))
			Expect(cfg.ProbeTimeout).To(Equal(5 * time.Second))
			Expect(cfg.PollConcurrency).To(Equal(8))
			Expect(cfg.PingRPM).To(BeZero())
			Expect(cfg.PublicKeys).To(BeEmpty())
			Expect(cfg.AdminKeys).To(BeEmpty())
		})

		It("splits API keys on commas", func() {
			os.Setenv("PUBLIC_API_KEYS", "pub_a, pub_b,,")
			os.Setenv("ADMIN_API_KEYS", "adm_x")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PublicKeys).To(Equal([]string{"pub_a", "pub_b"}))
			Expect(cfg.AdminKeys).To(Equal([]string{"adm_x"}))
		})

		It("reads overrides from the environment", func() {
			os.Setenv("ADDR", "127.0.0.1:9090")
			os.Setenv("LOG_LEVEL", "debug")
			os.Setenv("POLL_INTERVAL", "15s")
			os.Setenv("PROBE_TIMEOUT", "750ms")
			os.Setenv("POLL_CONCURRENCY", "3")
			os.Setenv("PING_RPM", "120")
			os.Setenv("PING_BURST", "20")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Addr).To(Equal("127.0.0.1:9090"))
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.PollInterval).To(Equal(15 * time.Second))
			Expect(cfg.ProbeTimeout).To(Equal(750 * time.Millisecond))
			Expect(cfg.PollConcurrency).To(Equal(3))
			Expect(cfg.PingRPM).To(Equal(120))
			Expect(cfg.PingBurst).To(Equal(20))
		})

		It("allows disabling the poller", func() {
			os.Setenv("POLL_INTERVAL", "0s")
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.PollInterval).To(BeZero())
		})

		It("reads sitewatch.yaml and lets the environment win", func() {
			content := "addr: \":7070\"\npoll_interval: \"2m\"\nlog_level: warn\n"
			Expect(os.WriteFile(filepath.Join(tempDir, "sitewatch.yaml"), []byte(content), 0o644)).To(Succeed())
			os.Setenv("LOG_LEVEL", "error")

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Addr).To(Equal(":7070"))
			Expect(cfg.PollInterval).To(Equal(2 * time.Minute))
			Expect(cfg.LogLevel).To(Equal("error"))
		})

		DescribeTable("rejects invalid settings",
			func(key, value string) {
				os.Setenv(key, value)
				_, err := config.Load()
				Expect(err).To(HaveOccurred())
			},
			Entry("bad duration", "POLL_INTERVAL", "soon"),
			Entry("negative interval", "POLL_INTERVAL", "-5s"),
			Entry("zero timeout", "PROBE_TIMEOUT", "0s"),
			Entry("bad address", "ADDR", "localhost"),
			Entry("unknown level", "LOG_LEVEL", "verbose"),
			Entry("zero concurrency", "POLL_CONCURRENCY", "0"),
		)
	})
})
