package pathmatch_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

var _ = Describe("Cache", func() {
	var cache *pathmatch.Cache

	BeforeEach(func() {
		cache = pathmatch.NewCache()
	})

	It("compiles each pattern once", func() {
		first := cache.Get("*.go")
		second := cache.Get("*.go")

		Expect(second).To(BeIdenticalTo(first))
		Expect(cache.Size()).To(Equal(1))
	})

	It("matches through the cached pattern", func() {
		Expect(cache.Match("*.{c,h}", "src/x.h")).To(BeTrue())
		Expect(cache.Match("*.{c,h}", "src/x.go")).To(BeFalse())
		Expect(cache.Size()).To(Equal(1))
	})

	It("clears cached patterns", func() {
		cache.Get("a")
		cache.Get("b")
		Expect(cache.Size()).To(Equal(2))

		cache.Clear()
		Expect(cache.Size()).To(BeZero())
	})

	It("is safe for concurrent use", func() {
		var wg sync.WaitGroup

		for range 16 {
			wg.Add(1)

			go func() {
				defer wg.Done()
				defer GinkgoRecover()

				Expect(cache.Match("**/*.md", "docs/a/readme.md")).To(BeTrue())
			}()
		}

		wg.Wait()

		Expect(cache.Size()).To(Equal(1))
	})
})
