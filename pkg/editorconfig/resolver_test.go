package editorconfig_test

import (
	"bytes"
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

var _ = Describe("Resolver", func() {
	var (
		fs  afero.Fs
		ctx context.Context
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		ctx = context.Background()

		Expect(afero.WriteFile(fs, "/repo/.editorconfig",
			[]byte("root = true\n[*.go]\nindent_style = tab\n"), 0o644)).To(Succeed())
	})

	Describe("New", func() {
		It("should return a NullResolver when disabled", func() {
			r := editorconfig.New(false)

			Expect(r).To(BeAssignableToTypeOf(editorconfig.NullResolver{}))
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
			Expect(r.Resolve("/repo/main.go")).To(BeEmpty())
			Expect(r.Chain()).To(BeNil())
		})

		It("should return a FileResolver when enabled", func() {
			r := editorconfig.New(true, editorconfig.WithSource(editorconfig.NewFSSource(fs)))

			Expect(r).To(BeAssignableToTypeOf(&editorconfig.FileResolver{}))
		})
	})

	Describe("FileResolver", func() {
		var r *editorconfig.FileResolver

		BeforeEach(func() {
			r = editorconfig.NewFileResolver(editorconfig.WithSource(editorconfig.NewFSSource(fs)))
		})

		It("should resolve nothing before a chain is built", func() {
			Expect(r.Resolve("/repo/main.go")).To(BeEmpty())
		})

		It("should resolve against the built chain", func() {
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())

			Expect(r.Chain()).To(HaveLen(1))
			Expect(r.Resolve("/repo/main.go")).To(Equal(editorconfig.Properties{
				"indent_style": "tab",
				"indent_size":  "tab",
			}))
		})

		It("should forget the chain on Clear", func() {
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
			r.Clear()

			Expect(r.Chain()).To(BeNil())
			Expect(r.Resolve("/repo/main.go")).To(BeEmpty())
		})

		It("should replace the chain on rebuild", func() {
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
			Expect(r.BuildChain(ctx, "/elsewhere")).To(Succeed())

			Expect(r.Chain()).To(BeEmpty())
		})

		It("should honour the configured file name", func() {
			Expect(afero.WriteFile(fs, "/repo/.ec", []byte("[*]\nx = y\n"), 0o644)).To(Succeed())

			r = editorconfig.NewFileResolver(
				editorconfig.WithSource(editorconfig.NewFSSource(fs)),
				editorconfig.WithFileName(".ec"),
			)

			Expect(r.FileName()).To(Equal(".ec"))
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
			Expect(r.Resolve("/repo/a")).To(HaveKeyWithValue("x", "y"))
		})

		It("should fail on a cancelled context and keep the old chain", func() {
			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			Expect(r.BuildChain(cancelled, "/elsewhere")).To(MatchError(context.Canceled))
			Expect(r.Chain()).To(HaveLen(1))
		})

		It("should share the pattern cache", func() {
			cache := pathmatch.NewCache()
			r = editorconfig.NewFileResolver(
				editorconfig.WithSource(editorconfig.NewFSSource(fs)),
				editorconfig.WithPatternCache(cache),
			)

			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
			r.Resolve("/repo/main.go")

			Expect(cache.Size()).To(Equal(1))

			r.Clear()
			Expect(cache.Size()).To(BeZero())
		})

		It("should log through the configured logger", func() {
			buf := &bytes.Buffer{}
			r = editorconfig.NewFileResolver(
				editorconfig.WithSource(editorconfig.NewFSSource(fs)),
				editorconfig.WithLogger(logger.NewLevelLogger(buf, logger.LevelDebug)),
			)

			Expect(r.BuildChain(ctx, "/repo")).To(Succeed())

			Expect(buf.String()).To(ContainSubstring("chain built dir=/repo levels=1 root=true"))
		})

		It("should allow concurrent resolves and rebuilds", func() {
			var wg sync.WaitGroup

			for i := range 8 {
				wg.Add(1)

				go func() {
					defer wg.Done()
					defer GinkgoRecover()

					if i%2 == 0 {
						Expect(r.BuildChain(ctx, "/repo")).To(Succeed())
					} else {
						props := r.Resolve("/repo/main.go")
						Expect(len(props)).To(BeElementOf(0, 2))
					}
				}()
			}

			wg.Wait()
		})
	})
})
