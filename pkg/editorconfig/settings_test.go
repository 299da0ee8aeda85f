package editorconfig_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

var _ = Describe("ParseSettings", func() {
	It("should translate every known property", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{
			"indent_style":             "space",
			"indent_size":              "2",
			"tab_width":                "4",
			"end_of_line":              "crlf",
			"charset":                  "utf-8-bom",
			"trim_trailing_whitespace": "true",
			"insert_final_newline":     "false",
			"max_line_length":          "120",
		}, 8)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.IndentStyle).To(Equal(editorconfig.IndentStyleSpace))
		Expect(s.UseTabs()).To(BeFalse())
		Expect(s.IndentSize).To(Equal(2))
		Expect(s.TabWidth).To(Equal(4))
		Expect(s.EndOfLine).To(Equal(editorconfig.EndOfLineCRLF))
		Expect(s.Charset).To(Equal("utf-8-bom"))
		Expect(s.TrimTrailingWhitespace).To(HaveValue(BeTrue()))
		Expect(s.InsertFinalNewline).To(HaveValue(BeFalse()))
		Expect(s.MaxLineLength).To(Equal(120))
	})

	It("should return zero settings for empty properties", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{}, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(editorconfig.Settings{}))
	})

	It("should fall back to the default tab width for indent_size = tab", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{
			"indent_style": "tab",
			"indent_size":  "tab",
		}, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(s.UseTabs()).To(BeTrue())
		Expect(s.IndentSize).To(Equal(8))
		Expect(s.TabWidth).To(BeZero())
	})

	It("should prefer tab_width for indent_size = tab", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{
			"indent_size": "tab",
			"tab_width":   "3",
		}, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(s.IndentSize).To(Equal(3))
	})

	It("should treat max_line_length = off as unset", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{"max_line_length": "off"}, 8)

		Expect(err).NotTo(HaveOccurred())
		Expect(s.MaxLineLength).To(BeZero())
	})

	It("should report every invalid value and keep the valid ones", func() {
		s, err := editorconfig.ParseSettings(editorconfig.Properties{
			"indent_style": "spaces",
			"indent_size":  "-1",
			"end_of_line":  "lf",
			"charset":      "ebcdic",
		}, 8)

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, editorconfig.ErrInvalidValue)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("invalid value in .editorconfig 'indent_style=spaces'"))
		Expect(err.Error()).To(ContainSubstring("'indent_size=-1'"))
		Expect(err.Error()).To(ContainSubstring("'charset=ebcdic'"))

		Expect(s.EndOfLine).To(Equal(editorconfig.EndOfLineLF))
		Expect(s.IndentStyle).To(BeEmpty())
	})

	DescribeTable("rejected values",
		func(key, value string) {
			_, err := editorconfig.ParseSettings(editorconfig.Properties{key: value}, 8)

			Expect(errors.Is(err, editorconfig.ErrInvalidValue)).To(BeTrue())
		},
		Entry("zero tab width", "tab_width", "0"),
		Entry("non numeric indent size", "indent_size", "wide"),
		Entry("unknown line ending", "end_of_line", "lfcr"),
		Entry("yes for a boolean", "insert_final_newline", "yes"),
		Entry("non numeric max line length", "max_line_length", "long"),
	)
})
