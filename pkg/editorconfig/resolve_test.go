package editorconfig_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

var _ = Describe("Chain", func() {
	var (
		fs  afero.Fs
		src *editorconfig.FSSource
	)

	write := func(path, content string) {
		Expect(fs.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(afero.WriteFile(fs, path, []byte(content), 0o644)).To(Succeed())
	}

	resolve := func(startDir, target string) editorconfig.Properties {
		return editorconfig.BuildChain(src, startDir, editorconfig.DefaultFileName).Resolve(target)
	}

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		src = editorconfig.NewFSSource(fs)
	})

	Describe("BuildChain", func() {
		It("should order levels outermost first", func() {
			write("/a/.editorconfig", "[*]\nx = 1\n")
			write("/a/b/.editorconfig", "[*]\nx = 2\n")

			chain := editorconfig.BuildChain(src, "/a/b", "")

			Expect(chain.Dirs()).To(Equal([]string{"/a/", "/a/b/"}))
		})

		It("should stop at a root level", func() {
			write("/a/.editorconfig", "[*]\nindent_size = 8\n")
			write("/a/b/.editorconfig", "root = true\n[*]\ncharset = utf-8\n")

			chain := editorconfig.BuildChain(src, "/a/b/c", editorconfig.DefaultFileName)

			Expect(chain).To(HaveLen(1))
			Expect(chain[0].Dir).To(Equal("/a/b/"))
			Expect(chain.HasRoot()).To(BeTrue())

			props := chain.Resolve("/a/b/c/file.txt")
			Expect(props).NotTo(HaveKey("indent_size"))
			Expect(props).To(HaveKeyWithValue("charset", "utf-8"))
		})

		It("should include the filesystem root", func() {
			write("/.editorconfig", "[*]\nend_of_line = lf\n")

			chain := editorconfig.BuildChain(src, "/x/y", "")

			Expect(chain.Dirs()).To(Equal([]string{"/"}))
			Expect(chain.Resolve("/x/y/z.txt")).To(HaveKeyWithValue("end_of_line", "lf"))
		})

		It("should skip directories without a config file", func() {
			chain := editorconfig.BuildChain(src, "/nothing/here", "")

			Expect(chain).To(BeEmpty())
			Expect(chain.Resolve("/nothing/here/a.c")).To(BeEmpty())
		})

		It("should honour a custom file name", func() {
			write("/a/.ec", "[*]\nx = custom\n")
			write("/a/.editorconfig", "[*]\nx = default\n")

			props := editorconfig.BuildChain(src, "/a", ".ec").Resolve("/a/f")

			Expect(props).To(HaveKeyWithValue("x", "custom"))
		})

		It("should return an empty chain for an unset directory", func() {
			Expect(editorconfig.BuildChain(src, "", "")).To(BeEmpty())
		})

		It("should clean the start directory", func() {
			write("/proj/.editorconfig", "root = true\n[src/*.c]\nindent_size = 2\n")
			write("/proj/src/.editorconfig", "[*.c]\ncharset = utf-8\n")

			chain := editorconfig.BuildChain(src, "/proj/./src/../src/", "")

			Expect(chain.Dirs()).To(Equal([]string{"/proj/", "/proj/src/"}))

			props := chain.Resolve("/proj/src/main.c")
			Expect(props).To(HaveKeyWithValue("indent_size", "2"))
			Expect(props).To(HaveKeyWithValue("charset", "utf-8"))
		})

		It("should stop at a root declared inside a section", func() {
			write("/a/.editorconfig", "[*]\nindent_size = 8\n")
			write("/a/b/.editorconfig", "[*]\nroot = true\ncharset = utf-8\n")

			chain := editorconfig.BuildChain(src, "/a/b", "")

			Expect(chain.Dirs()).To(Equal([]string{"/a/b/"}))

			props := chain.Resolve("/a/b/f.txt")
			Expect(props).NotTo(HaveKey("indent_size"))
			Expect(props).To(HaveKeyWithValue("root", "true"))
			Expect(props).To(HaveKeyWithValue("charset", "utf-8"))
		})
	})

	Describe("Resolve", func() {
		It("should let the innermost level win", func() {
			write("/a/.editorconfig", "[*.txt]\nindent_size = 2\n")
			write("/a/b/.editorconfig", "[*.txt]\nindent_size = 4\n")

			Expect(resolve("/a/b", "/a/b/file.txt")).To(HaveKeyWithValue("indent_size", "4"))
		})

		It("should let later sections in one file win", func() {
			write("/a/.editorconfig", "[*]\nindent_size = 2\n[*.go]\nindent_size = 8\n")

			Expect(resolve("/a", "/a/main.go")).To(HaveKeyWithValue("indent_size", "8"))
			Expect(resolve("/a", "/a/main.py")).To(HaveKeyWithValue("indent_size", "2"))
		})

		It("should remove unset keys", func() {
			write("/a/.editorconfig", "[*]\ncharset = utf-8\n")
			write("/a/b/.editorconfig", "[*]\ncharset = unset\n")

			Expect(resolve("/a/b", "/a/b/x")).NotTo(HaveKey("charset"))
		})

		It("should ignore preamble assignments", func() {
			write("/a/.editorconfig", "indent_size = 3\n[*.c]\ncharset = latin1\n")

			Expect(resolve("/a", "/a/x.c")).To(Equal(editorconfig.Properties{"charset": "latin1"}))
		})

		It("should never activate an unclosed header", func() {
			write("/a/.editorconfig", "[*]\nx = 1\n[*\nx = 2\n")

			Expect(resolve("/a", "/a/f")).To(HaveKeyWithValue("x", "1"))
		})

		It("should match patterns relative to each level", func() {
			write("/a/.editorconfig", "[b/*.c]\nx = outer\n")
			write("/a/b/.editorconfig", "[/*.c]\ny = inner\n")

			props := resolve("/a/b", "/a/b/m.c")

			Expect(props).To(HaveKeyWithValue("x", "outer"))
			Expect(props).To(HaveKeyWithValue("y", "inner"))
		})

		It("should use an empty relative path for targets outside a level", func() {
			write("/a/b/.editorconfig", "[*.txt]\nx = 1\n")

			Expect(resolve("/a/b", "/other/file.txt")).To(BeEmpty())
		})

		It("should keep values containing equals signs", func() {
			write("/a/.editorconfig", "[*]\nspelling_language = en=us\n")

			Expect(resolve("/a", "/a/f")).To(HaveKeyWithValue("spelling_language", "en=us"))
		})

		It("should be idempotent", func() {
			write("/a/.editorconfig", "[*]\nindent_style = tab\n")
			chain := editorconfig.BuildChain(src, "/a", "")
			before := len(chain[0].Lines)

			first := chain.Resolve("/a/x")
			second := chain.Resolve("/a/x")

			Expect(second).To(Equal(first))
			Expect(chain[0].Lines).To(HaveLen(before))
		})

		It("should produce the documented end-to-end result", func() {
			write("/proj/.editorconfig", "root=true\n[*.py]\nindent_style=space\nindent_size=4")
			write("/proj/src/.editorconfig", "[*.py]\nindent_size=2")

			Expect(resolve("/proj/src", "/proj/src/app.py")).To(Equal(editorconfig.Properties{
				"indent_style": "space",
				"indent_size":  "2",
				"tab_width":    "2",
			}))
		})
	})

	DescribeTable("defaulting pass",
		func(section string, want editorconfig.Properties) {
			level := editorconfig.ParseLevel("/a", "[*]\n"+section)

			Expect(editorconfig.Chain{level}.Resolve("/a/f")).To(Equal(want))
		},
		Entry("tab style implies tab size",
			"indent_style = tab",
			editorconfig.Properties{"indent_style": "tab", "indent_size": "tab"}),
		Entry("numeric size implies tab width",
			"indent_size = 4",
			editorconfig.Properties{"indent_size": "4", "tab_width": "4"}),
		Entry("tab size takes tab width",
			"indent_size = tab\ntab_width = 3",
			editorconfig.Properties{"indent_size": "3", "tab_width": "3"}),
		Entry("tab style with tab width",
			"indent_style = tab\ntab_width = 5",
			editorconfig.Properties{"indent_style": "tab", "indent_size": "5", "tab_width": "5"}),
		Entry("explicit tab width is kept",
			"indent_size = 2\ntab_width = 8",
			editorconfig.Properties{"indent_size": "2", "tab_width": "8"}),
		Entry("space style alone adds nothing",
			"indent_style = space",
			editorconfig.Properties{"indent_style": "space"}),
	)
})

var _ = Describe("Properties", func() {
	It("should render sorted key=value lines", func() {
		props := editorconfig.Properties{"tab_width": "4", "charset": "utf-8"}

		Expect(props.Keys()).To(Equal([]string{"charset", "tab_width"}))
		Expect(props.String()).To(Equal("charset=utf-8\ntab_width=4\n"))
	})

	It("should look up keys", func() {
		v, ok := editorconfig.Properties{"a": "1"}.Get("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("1"))

		_, ok = editorconfig.Properties{}.Get("a")
		Expect(ok).To(BeFalse())
	})
})
