package doctor_test

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

var _ = Describe("Runner", func() {
	var (
		ctx      context.Context
		ctrl     *gomock.Controller
		registry *doctor.Registry
		reporter *doctor.MockReporter
		out      *bytes.Buffer
		runner   *doctor.Runner
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		registry = doctor.NewRegistry()
		reporter = doctor.NewMockReporter(ctrl)
		out = &bytes.Buffer{}
		runner = doctor.NewRunner(registry, reporter, out, logger.NewNoOpLogger())
	})

	It("succeeds when every check passes", func() {
		registry.RegisterChecker(&stubChecker{name: "syntax", category: doctor.CategoryEditorConfig})
		reporter.EXPECT().Report(gomock.Len(1), false)

		Expect(runner.Run(ctx, doctor.RunOptions{})).To(Succeed())
		Expect(out.String()).To(BeEmpty())
	})

	It("succeeds with warnings only", func() {
		registry.RegisterChecker(&stubChecker{
			name:     "root",
			category: doctor.CategoryEditorConfig,
			result:   func(n string) doctor.CheckResult { return doctor.FailWarning(n, "no root") },
		})
		reporter.EXPECT().Report(gomock.Any(), true)

		Expect(runner.Run(ctx, doctor.RunOptions{Verbose: true})).To(Succeed())
	})

	It("fails when a check reports an error", func() {
		registry.RegisterChecker(&stubChecker{
			name:     "values",
			category: doctor.CategoryEditorConfig,
			result:   func(n string) doctor.CheckResult { return doctor.FailError(n, "bad value") },
		})
		reporter.EXPECT().Report(gomock.Any(), false)

		err := runner.Run(ctx, doctor.RunOptions{})
		Expect(errors.Is(err, doctor.ErrChecksFailed)).To(BeTrue())
	})

	It("only runs the requested categories", func() {
		registry.RegisterChecker(&stubChecker{name: "syntax", category: doctor.CategoryEditorConfig})
		registry.RegisterChecker(&stubChecker{
			name:     "global",
			category: doctor.CategoryConfig,
			result:   func(n string) doctor.CheckResult { return doctor.FailError(n, "broken") },
		})
		reporter.EXPECT().Report(gomock.Len(1), false)

		Expect(runner.Run(ctx, doctor.RunOptions{
			Categories: []doctor.Category{doctor.CategoryEditorConfig},
		})).To(Succeed())
	})

	Describe("fixes", func() {
		var (
			checker *doctor.MockHealthChecker
			fixer   *doctor.MockFixer
		)

		failing := doctor.FailWarning("root", "no root").WithFixID("add_root")

		BeforeEach(func() {
			checker = doctor.NewMockHealthChecker(ctrl)
			checker.EXPECT().Category().Return(doctor.CategoryEditorConfig).AnyTimes()
			checker.EXPECT().Name().Return("root").AnyTimes()

			fixer = doctor.NewMockFixer(ctrl)
			fixer.EXPECT().ID().Return("add_root").AnyTimes()
			fixer.EXPECT().Description().Return("Declare root = true").AnyTimes()

			registry.RegisterChecker(checker)
			registry.RegisterFixer(fixer)
		})

		It("suggests fixes without applying them", func() {
			checker.EXPECT().Check(gomock.Any()).Return(failing)
			reporter.EXPECT().Report(gomock.Any(), false)

			Expect(runner.Run(ctx, doctor.RunOptions{})).To(Succeed())
			Expect(out.String()).To(ContainSubstring("root: Declare root = true"))
			Expect(out.String()).To(ContainSubstring("ecresolve doctor --fix"))
		})

		It("applies fixes and re-runs the failed checks", func() {
			gomock.InOrder(
				checker.EXPECT().Check(gomock.Any()).Return(failing),
				fixer.EXPECT().CanFix(gomock.Any()).Return(true),
				fixer.EXPECT().Fix(gomock.Any()).Return(nil),
				checker.EXPECT().Check(gomock.Any()).Return(doctor.Pass("root", "declared")),
			)
			reporter.EXPECT().Report(gomock.Any(), false).Times(2)

			Expect(runner.Run(ctx, doctor.RunOptions{AutoFix: true})).To(Succeed())
		})

		It("reports a failing fixer", func() {
			checker.EXPECT().Check(gomock.Any()).Return(failing)
			fixer.EXPECT().CanFix(gomock.Any()).Return(true)
			fixer.EXPECT().Fix(gomock.Any()).Return(errors.New("read-only"))
			reporter.EXPECT().Report(gomock.Any(), false)

			err := runner.Run(ctx, doctor.RunOptions{AutoFix: true})
			Expect(err).To(MatchError(ContainSubstring("read-only")))
		})
	})
})
