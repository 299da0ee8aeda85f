package config_test

import (
	"fmt"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ecresolve/internal/config"
	pkgConfig "github.com/smykla-skalski/ecresolve/pkg/config"
)

var _ = Describe("Validator", func() {
	var validator *config.Validator

	BeforeEach(func() {
		validator = config.NewValidator()
	})

	It("should accept the default config", func() {
		Expect(validator.Validate(config.DefaultConfig())).To(Succeed())
	})

	It("should reject a nil config", func() {
		err := validator.Validate(nil)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})

	DescribeTable("invalid configurations",
		func(mutate func(*pkgConfig.Config), sentinel error) {
			cfg := config.DefaultConfig()
			mutate(cfg)

			err := validator.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
			// sentinels live in the secondary error, visible in verbose output
			Expect(fmt.Sprintf("%+v", err)).To(ContainSubstring(sentinel.Error()))
		},
		Entry("file name with a separator",
			func(c *pkgConfig.Config) { c.EditorConfig.FileName = "sub/.editorconfig" },
			config.ErrInvalidOption),
		Entry("blank file name",
			func(c *pkgConfig.Config) { c.EditorConfig.FileName = "   " },
			config.ErrEmptyValue),
		Entry("negative tab width",
			func(c *pkgConfig.Config) { c.EditorConfig.DefaultTabWidth = -1 },
			config.ErrInvalidLength),
		Entry("unknown log level",
			func(c *pkgConfig.Config) { c.Log.Level = "verbose" },
			config.ErrInvalidOption),
		Entry("zero workers",
			func(c *pkgConfig.Config) { zero := 0; c.Workers = &zero },
			config.ErrInvalidLength),
		Entry("future version",
			func(c *pkgConfig.Config) { c.Version = 99 },
			config.ErrUnsupportedVersion),
	)

	It("should report every failure", func() {
		cfg := config.DefaultConfig()
		cfg.Log.Level = "verbose"
		cfg.EditorConfig.DefaultTabWidth = -2

		err := validator.Validate(cfg)
		Expect(err).To(MatchError(ContainSubstring("2 error(s)")))
	})
})
