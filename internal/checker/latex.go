package checker

import "context"

// reportTool is one program of the report-building toolchain.
type reportTool struct {
	capability Capability
	name       string
	args       []string
	veto       bool
	disabled   string
	missing    string
}

func (c *Checker) checkReportTool(ctx context.Context, t reportTool) Outcome {
	o := Outcome{Capability: t.capability}
	c.printer.Library(t.name)

	if t.veto {
		return c.fail(o, Vetoed, t.disabled)
	}
	out, err := c.runner.Run(ctx, t.name, t.args...)
	if toolMissing(out, err) {
		return c.fail(o, NotFound, t.missing)
	}
	o.Version = firstLine(out)
	return c.ok(o)
}

// CheckPdfLatex looks for pdflatex.
func (c *Checker) CheckPdfLatex(ctx context.Context) Outcome {
	return c.checkReportTool(ctx, reportTool{
		capability: CapPdfLatex,
		name:       "pdflatex",
		args:       []string{"-version"},
		veto:       c.opts.PdflatexVeto,
		disabled:   "pdflatex disabled. Reports under the pdf format will not be compiled.",
		missing:    "pdflatex not found. Reports under the pdf format will not be compiled.",
	})
}

// CheckLatex looks for latex.
func (c *Checker) CheckLatex(ctx context.Context) Outcome {
	return c.checkReportTool(ctx, reportTool{
		capability: CapLatex,
		name:       "latex",
		args:       []string{"-version"},
		veto:       c.opts.LatexVeto,
		disabled:   "latex disabled. Reports under the dvi format will not be compiled.",
		missing:    "latex not found. Reports under the dvi format will not be compiled.",
	})
}

// CheckDvipdf looks for dvipdf. It exits non-zero without arguments, so
// only a missing executable counts as absent.
func (c *Checker) CheckDvipdf(ctx context.Context) Outcome {
	return c.checkReportTool(ctx, reportTool{
		capability: CapDvipdf,
		name:       "dvipdf",
		veto:       c.opts.DvipdfVeto,
		disabled:   "dvipdf disabled. DVI reports will not be converted to pdf files.",
		missing:    "dvipdf not found. DVI reports will not be converted to pdf files.",
	})
}
