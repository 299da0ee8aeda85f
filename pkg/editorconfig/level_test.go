package editorconfig_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

var _ = Describe("ParseLevel", func() {
	It("should keep headers verbatim and lower-case assignments", func() {
		level := editorconfig.ParseLevel("/proj", "[*.MD]\nIndent_Style = Space\n")

		Expect(level.Lines).To(Equal([]string{"[*.MD]", "indent_style = space"}))
	})

	It("should normalize the directory", func() {
		Expect(editorconfig.ParseLevel("/proj", "").Dir).To(Equal("/proj/"))
		Expect(editorconfig.ParseLevel("/proj/", "").Dir).To(Equal("/proj/"))
		Expect(editorconfig.ParseLevel("/", "").Dir).To(Equal("/"))
	})

	It("should drop comments and blank lines", func() {
		level := editorconfig.ParseLevel("/p", "\n   \n# comment\n; other = comment\n\t\n")

		Expect(level.Lines).To(BeEmpty())
		Expect(level.Root).To(BeFalse())
	})

	It("should drop lines that are neither headers nor assignments", func() {
		level := editorconfig.ParseLevel("/p", "[*]\njust text\nkey = v\n")

		Expect(level.Lines).To(Equal([]string{"[*]", "key = v"}))
	})

	It("should strip the BOM and carriage returns", func() {
		level := editorconfig.ParseLevel("/p", "\xEF\xBB\xBFroot = true\r\n[*]\r\nindent_size = 2\r\n")

		Expect(level.Root).To(BeTrue())
		Expect(level.Lines).To(Equal([]string{"root = true", "[*]", "indent_size = 2"}))
	})

	It("should trim surrounding whitespace", func() {
		level := editorconfig.ParseLevel("/p", "   [*.go]   \n\t indent_style=tab \t\n")

		Expect(level.Lines).To(Equal([]string{"[*.go]", "indent_style=tab"}))
	})

	DescribeTable("root detection",
		func(text string, want bool) {
			Expect(editorconfig.ParseLevel("/p", text).Root).To(Equal(want))
		},
		Entry("compact", "root=true", true),
		Entry("spaced", "root = true", true),
		Entry("upper case", "ROOT = TRUE", true),
		Entry("false value", "root = false", false),
		Entry("other key", "rooted = true", false),
		Entry("inside a section", "[*]\nroot = true", true),
		Entry("inside an unmatched section", "[*.none]\nroot = true", true),
		Entry("extra equals sign", "root = true = yes", false),
		Entry("after a comment", "# top\nroot = true\n[*]", true),
	)

	It("should fold only ASCII letters", func() {
		level := editorconfig.ParseLevel("/p", "[*]\nKey = ÄBC\n")

		Expect(level.Lines[1]).To(Equal("key = Äbc"))
	})
})

var _ = Describe("ParseLine", func() {
	It("should parse closed section headers", func() {
		line := editorconfig.ParseLine("[*.{js,ts}]")

		Expect(line.Kind).To(Equal(editorconfig.LineSection))
		Expect(line.Pattern).To(Equal("*.{js,ts}"))
		Expect(line.Closed).To(BeTrue())
	})

	It("should flag unclosed section headers", func() {
		line := editorconfig.ParseLine("[*.c")

		Expect(line.Kind).To(Equal(editorconfig.LineSection))
		Expect(line.Closed).To(BeFalse())
	})

	It("should treat a lone bracket as unclosed", func() {
		line := editorconfig.ParseLine("[")

		Expect(line.Kind).To(Equal(editorconfig.LineSection))
		Expect(line.Closed).To(BeFalse())
	})

	It("should split assignments on the first equals sign", func() {
		line := editorconfig.ParseLine("tag = a=b")

		Expect(line.Kind).To(Equal(editorconfig.LineAssignment))
		Expect(line.Key).To(Equal("tag"))
		Expect(line.Value).To(Equal("a=b"))
	})

	It("should allow empty values", func() {
		line := editorconfig.ParseLine("charset =")

		Expect(line.Kind).To(Equal(editorconfig.LineAssignment))
		Expect(line.Key).To(Equal("charset"))
		Expect(line.Value).To(BeEmpty())
	})

	It("should classify anything else as other", func() {
		Expect(editorconfig.ParseLine("plain").Kind).To(Equal(editorconfig.LineOther))
	})
})
