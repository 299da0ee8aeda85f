package pathmatch_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

var _ = Describe("Matches", func() {
	DescribeTable("literal and wildcard patterns",
		func(pattern, path string, want bool) {
			Expect(pathmatch.Matches(pattern, path)).To(Equal(want))
		},
		Entry("star matches basename", "*.c", "main.c", true),
		Entry("star rejects other extension", "*.c", "main.h", false),
		Entry("literal is case sensitive", "Makefile", "makefile", false),
		Entry("literal matches exactly", "Makefile", "Makefile", true),
		Entry("question mark matches one char", "a?c", "abc", true),
		Entry("question mark needs a char", "a?c", "ac", false),
		Entry("question mark never matches slash", "a?c", "a/c", false),
		Entry("question mark matches multibyte rune", "?.txt", "é.txt", true),
		Entry("star does not cross separator", "src/*.c", "src/sub/main.c", false),
		Entry("star matches empty run", "main*.c", "main.c", true),
		Entry("globstar crosses separators", "**/*.c", "sub/dir/main.c", true),
		Entry("leading globstar matches zero directories", "**/*.c", "main.c", true),
		Entry("globstar inside a segment", "a**z", "a/b/z", true),
		Entry("slash globstar slash matches one separator", "a/**/b", "a/b", true),
		Entry("slash globstar slash matches nested dirs", "a/**/b", "a/x/y/b", true),
		Entry("slash globstar slash requires separators", "a/**/b", "a/xb", false),
		Entry("trailing globstar", "docs/**", "docs/a/b.md", true),
		Entry("empty pattern matches empty path", "", "", true),
		Entry("empty pattern rejects non-empty path", "", "a", false),
	)

	Describe("anchoring", func() {
		It("matches slash-free patterns at any depth", func() {
			Expect(pathmatch.Matches("*.c", "sub/main.c")).To(BeTrue())
			Expect(pathmatch.Matches("main.c", "a/b/main.c")).To(BeTrue())
		})

		It("does not match slash-free patterns against a partial segment", func() {
			Expect(pathmatch.Matches("main.c", "a/xmain.c")).To(BeFalse())
		})

		It("anchors patterns containing a slash", func() {
			Expect(pathmatch.Matches("src/*.c", "src/main.c")).To(BeTrue())
			Expect(pathmatch.Matches("src/*.c", "lib/src/main.c")).To(BeFalse())
		})

		It("ignores one leading slash", func() {
			Expect(pathmatch.Matches("/src/*.c", "src/main.c")).To(BeTrue())
			Expect(pathmatch.Matches("/*.c", "sub/main.c")).To(BeFalse())
		})

		It("reports anchoring on the compiled pattern", func() {
			Expect(pathmatch.Compile("*.c").Anchored()).To(BeFalse())
			Expect(pathmatch.Compile("lib/*.c").Anchored()).To(BeTrue())
		})
	})

	DescribeTable("bracket expressions",
		func(pattern, path string, want bool) {
			Expect(pathmatch.Matches(pattern, path)).To(Equal(want))
		},
		Entry("range matches digit", "[0-9].txt", "5.txt", true),
		Entry("range rejects letter", "[0-9].txt", "a.txt", false),
		Entry("set matches member", "[abc]x", "bx", true),
		Entry("negated set rejects member", "[!abc].txt", "a.txt", false),
		Entry("negated set accepts non-member", "[!abc].txt", "d.txt", true),
		Entry("caret negates too", "[^abc].txt", "d.txt", true),
		Entry("leading bracket is a member", "[]a]", "]", true),
		Entry("trailing dash is a member", "[a-]", "-", true),
		Entry("escaped bracket member", `[\]]`, "]", true),
		Entry("class never matches slash", "a[!x]b", "a/b", false),
		Entry("reversed range is normalized", "[9-0]", "4", true),
	)

	DescribeTable("brace expressions",
		func(pattern, path string, want bool) {
			Expect(pathmatch.Matches(pattern, path)).To(Equal(want))
		},
		Entry("alternative matches", "{foo,bar}.txt", "bar.txt", true),
		Entry("no alternative matches", "{foo,bar}.txt", "baz.txt", false),
		Entry("empty alternative", "main{,.c}", "main", true),
		Entry("empty alternative sibling", "main{,.c}", "main.c", true),
		Entry("nested braces", "{a,{b,c}}x", "cx", true),
		Entry("alternatives hold wildcards", "*.{js,ts}", "lib/app.ts", true),
		Entry("single word is literal", "{single}.b", "{single}.b", true),
		Entry("single word does not expand", "{single}.b", "single.b", false),
		Entry("escaped comma stays in alternative", `{a\,b,c}`, "a,b", true),
	)

	DescribeTable("numeric ranges",
		func(pattern, path string, want bool) {
			Expect(pathmatch.Matches(pattern, path)).To(Equal(want))
		},
		Entry("value inside range", "file{1..3}.txt", "file2.txt", true),
		Entry("lower bound is inclusive", "file{1..3}.txt", "file1.txt", true),
		Entry("upper bound is inclusive", "file{1..3}.txt", "file3.txt", true),
		Entry("value above range", "file{1..3}.txt", "file4.txt", false),
		Entry("value below range", "file{1..3}.txt", "file0.txt", false),
		Entry("leading zero rejected", "file{1..3}.txt", "file02.txt", false),
		Entry("plus sign accepted", "file{1..3}.txt", "file+2.txt", true),
		Entry("negative value outside range", "file{1..3}.txt", "file-1.txt", false),
		Entry("negative bounds", "n{-3..3}", "n-2", true),
		Entry("negative value below negative bound", "n{-3..3}", "n-4", false),
		Entry("reversed bounds", "v{3..1}", "v2", true),
		Entry("multi digit value", "{1..120}", "99", true),
		Entry("padded range requires width", "{01..10}", "05", true),
		Entry("padded range rejects short", "{01..10}", "5", false),
		Entry("padded range accepts upper bound", "{01..10}", "10", true),
		Entry("adjacent ranges backtrack", "{1..3}{1..3}", "12", true),
		Entry("overflowing digits never match", "f{1..3}", "f99999999999999999999", false),
		Entry("non numeric bounds are literal", "{a..b}", "{a..b}", true),
	)

	DescribeTable("escapes and malformed patterns",
		func(pattern, path string, want bool) {
			Expect(pathmatch.Matches(pattern, path)).To(Equal(want))
		},
		Entry("escaped star is literal", `\*.c`, "*.c", true),
		Entry("escaped star does not wildcard", `\*.c`, "a.c", false),
		Entry("escaped question mark", `a\?`, "a?", true),
		Entry("trailing backslash is literal", `a\`, `a\`, true),
		Entry("unclosed bracket is literal", "[ab", "[ab", true),
		Entry("unclosed bracket does not match member", "[ab", "a", false),
		Entry("bracket with slash is literal", "[a/b]", "[a/b]", true),
		Entry("unbalanced brace is literal", "{a,b", "{a,b", true),
		Entry("stray closing brace is literal", "a}", "a}", true),
	)

	Describe("Warnings", func() {
		It("is empty for well-formed patterns", func() {
			Expect(pathmatch.Compile("{*.go,[ab]?.c}").Warnings()).To(BeEmpty())
		})

		It("reports unclosed brackets", func() {
			Expect(pathmatch.Compile("[ab").Warnings()).To(ConsistOf(ContainSubstring("unclosed '['")))
		})

		It("reports unbalanced braces", func() {
			Expect(pathmatch.Compile("{a,b").Warnings()).To(ConsistOf(ContainSubstring("unbalanced '{'")))
		})

		It("keeps the source pattern", func() {
			Expect(pathmatch.Compile("*.{c,h}").String()).To(Equal("*.{c,h}"))
		})
	})

	Describe("backtracking", func() {
		const budget = 100 * time.Millisecond

		It("rejects repeated stars quickly", func() {
			pattern := strings.Repeat("*a", 12) + "*b"
			path := strings.Repeat("a", 40)

			start := time.Now()
			Expect(pathmatch.Matches(pattern, path)).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically("<", budget))
		})

		It("rejects repeated globstars quickly", func() {
			pattern := strings.Repeat("**a", 12) + "**b"
			path := strings.Repeat("a/", 20) + "a"

			start := time.Now()
			Expect(pathmatch.Matches(pattern, path)).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically("<", budget))
		})

		It("rejects stars inside alternatives quickly", func() {
			pattern := strings.Repeat("{*a,a*}", 10) + "b"
			path := strings.Repeat("a", 40)

			start := time.Now()
			Expect(pathmatch.Matches(pattern, path)).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically("<", budget))
		})

		It("still finds late matches", func() {
			pattern := strings.Repeat("*a", 12) + "*b"

			Expect(pathmatch.Matches(pattern, strings.Repeat("a", 40)+"b")).To(BeTrue())
			Expect(pathmatch.Matches("{*a,b*}{x,*y}", "zzazzy")).To(BeTrue())
			Expect(pathmatch.Matches("{*a,b*}{x,*y}", "zzazzq")).To(BeFalse())
		})

		It("reuses a compiled pattern across calls", func() {
			p := pathmatch.Compile("{a,b}*/**/c")

			Expect(p.Match("ax/c")).To(BeTrue())
			Expect(p.Match("cx/c")).To(BeFalse())
			Expect(p.Match("b/y/z/c")).To(BeTrue())
		})
	})
})
