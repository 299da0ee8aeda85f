package editorconfig_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

var _ = Describe("FSSource", func() {
	var (
		fs  afero.Fs
		buf *bytes.Buffer
		src *editorconfig.FSSource
	)

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		buf = &bytes.Buffer{}
		src = editorconfig.NewFSSource(fs,
			editorconfig.WithSourceLogger(logger.NewLevelLogger(buf, logger.LevelDebug)))
	})

	It("should read existing files", func() {
		Expect(afero.WriteFile(fs, "/d/.editorconfig", []byte("[*]\n"), 0o644)).To(Succeed())

		Expect(src.ReadText("/d/.editorconfig")).To(Equal("[*]\n"))
	})

	It("should return an empty string for missing files without logging", func() {
		Expect(src.ReadText("/missing/.editorconfig")).To(BeEmpty())
		Expect(buf.String()).To(BeEmpty())
	})

	It("should log other read failures", func() {
		dir := GinkgoT().TempDir()
		Expect(os.Mkdir(filepath.Join(dir, ".editorconfig"), 0o755)).To(Succeed())

		osSrc := editorconfig.NewOSSource(
			editorconfig.WithSourceLogger(logger.NewLevelLogger(buf, logger.LevelDebug)))

		Expect(osSrc.ReadText(filepath.Join(dir, ".editorconfig"))).To(BeEmpty())
		Expect(buf.String()).To(ContainSubstring("cannot read config file"))
	})

	It("should navigate directories", func() {
		Expect(src.ParentOf("/a/b")).To(Equal("/a"))
		Expect(src.ParentOf("/a/b/")).To(Equal("/a"))
		Expect(src.ParentOf("/")).To(Equal("/"))
		Expect(src.IsRoot("/")).To(BeTrue())
		Expect(src.IsRoot("/a")).To(BeFalse())
		Expect(src.IsSet("")).To(BeFalse())
		Expect(src.IsSet("/a")).To(BeTrue())
	})

	It("should read the real filesystem", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte("root = true\n"), 0o600)).To(Succeed())

		chain := editorconfig.BuildChain(editorconfig.NewOSSource(), dir, "")

		Expect(chain).To(HaveLen(1))
		Expect(chain[0].Root).To(BeTrue())
	})
})
