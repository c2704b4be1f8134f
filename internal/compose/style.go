package compose

import "strings"

// BuildStyleOps emits the layered text-style requests for a run sequence
// starting at the given offset. Three disjoint passes: one whole-range
// branding request (font/size/color) when any of those are provided, one
// emphasis request per bold/italic run, and one link request per linked
// run. The passes target non-overlapping style fields, so their relative
// order does not affect the resulting style state.
//
// A zero total run length returns no requests — zero-length style ranges
// are invalid on the remote side. Individual empty runs are skipped for
// the same reason.
func BuildStyleOps(start int64, runs []Run, font string, size float64, color *RGBColor) []Request {
	totalLen := runsLength(runs)
	if totalLen == 0 {
		return nil
	}

	var reqs []Request
	end := start + totalLen

	// Branding pass: font, size, color across the full range.
	if font != "" || size != 0 || color != nil {
		var style TextStyle
		var fields []string
		if font != "" {
			style.WeightedFontFamily = &WeightedFontFamily{FontFamily: font, Weight: 400}
			fields = append(fields, "weightedFontFamily")
		}
		if size != 0 {
			style.FontSize = pt(size)
			fields = append(fields, "fontSize")
		}
		if color != nil {
			style.ForegroundColor = rgb(*color)
			fields = append(fields, "foregroundColor")
		}
		reqs = append(reqs, Request{UpdateTextStyle: &UpdateTextStyleRequest{
			Range:     Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		}})
	}

	// Emphasis pass: bold/italic per run.
	pos := start
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		runEnd := pos + int64(len(run.Text))
		if run.Bold || run.Italic {
			var style TextStyle
			var fields []string
			if run.Bold {
				style.Bold = true
				fields = append(fields, "bold")
			}
			if run.Italic {
				style.Italic = true
				fields = append(fields, "italic")
			}
			reqs = append(reqs, Request{UpdateTextStyle: &UpdateTextStyleRequest{
				Range:     Range{StartIndex: pos, EndIndex: runEnd},
				TextStyle: style,
				Fields:    strings.Join(fields, ","),
			}})
		}
		pos = runEnd
	}

	// Link pass: hyperlinks per run.
	pos = start
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		runEnd := pos + int64(len(run.Text))
		if run.URL != "" {
			reqs = append(reqs, Request{UpdateTextStyle: &UpdateTextStyleRequest{
				Range:     Range{StartIndex: pos, EndIndex: runEnd},
				TextStyle: TextStyle{Link: &Link{URL: run.URL}},
				Fields:    "link",
			}})
		}
		pos = runEnd
	}

	return reqs
}

// brandStyleOps applies a branding tier (or nothing when brand is nil) to
// a run sequence. Shared by the heading, paragraph, and list composers.
func brandStyleOps(start int64, runs []Run, brand *BrandPreset, tier TextTier) []Request {
	if brand == nil {
		return BuildStyleOps(start, runs, "", 0, nil)
	}
	color := tier.Color
	return BuildStyleOps(start, runs, brand.Font, tier.Size, &color)
}
