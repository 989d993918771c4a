// Package wall computes the donor-wall render model: totals, progress
// toward the goal, the top-3 ranking, and the sorted/paginated slice the
// page paints. Everything here is a pure function of the donor
// collection plus the caller-owned view state; input slices are never
// mutated.
package wall

import (
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"donorwall/internal/models"
	"donorwall/internal/social"
)

// SortMode selects the display ordering of the wall.
type SortMode string

const (
	SortAmount SortMode = "amount"
	SortNewest SortMode = "newest"
	SortAlpha  SortMode = "alpha"
)

// ViewMode selects between the truncated preview and the full wall.
type ViewMode string

const (
	ModePreview ViewMode = "preview"
	ModeFull    ViewMode = "full"
)

// Defaults, matching the public page.
const (
	DefaultGoalUSD      = 1_000_000
	DefaultPreviewCount = 6
	DefaultPageSize     = 30
)

// AnonymousName is the display fallback for records without a name and
// the substitute used when post-payment text fails moderation.
const AnonymousName = "Anonymous Dummy"

// Options is the per-render view state. The caller owns it across
// events; the pipeline holds no state of its own.
type Options struct {
	Mode         ViewMode
	Sort         SortMode
	GoalUSD      int
	PreviewCount int
	PageSize     int
	// Visible is the pagination cursor for full mode: how many records
	// the viewer has revealed so far. Zero means one page.
	Visible int
}

// Card is one display record, annotated for painting.
type Card struct {
	models.Donor
	DisplayName    string        `json:"display_name"`
	Rank           int           `json:"rank,omitempty"` // 1..3 when badged
	AmountLabel    string        `json:"amount_label"`
	DateLabel      string        `json:"date_label"`
	AvatarInitials string        `json:"avatar_initials"`
	AvatarHue      int           `json:"avatar_hue"`
	Links          []social.Link `json:"links,omitempty"`
}

// RenderModel is everything the presentation layer needs to paint the
// wall. It prescribes data and ordering, not visuals.
type RenderModel struct {
	Items    []Card `json:"items"`
	TopThree []Card `json:"top_three"`

	TotalUSD     int     `json:"total_usd"`
	DonorCount   int     `json:"donor_count"`
	Percent      float64 `json:"percent"`
	PercentLabel string  `json:"percent_label"`
	BarWidth     float64 `json:"bar_width"`
	RaisedLabel  string  `json:"raised_label"`
	GoalLabel    string  `json:"goal_label"`

	VisibleCount   int  `json:"visible_count"`
	HasMore        bool `json:"has_more"`
	HighlightRanks bool `json:"highlight_ranks"`
	Empty          bool `json:"empty"`
}

// ParseSort maps a wire value onto a SortMode. "date" is accepted as an
// alias for newest. Unknown or empty values fall back to the mode's
// page default: newest for the preview, amount for the full wall.
func ParseSort(s string, mode ViewMode) SortMode {
	switch s {
	case "newest", "date":
		return SortNewest
	case "alpha":
		return SortAlpha
	case "amount":
		return SortAmount
	}
	if mode == ModePreview {
		return SortNewest
	}
	return SortAmount
}

// ParseMode maps a wire value onto a ViewMode, defaulting to full.
func ParseMode(s string) ViewMode {
	if s == string(ModePreview) {
		return ModePreview
	}
	return ModeFull
}

// Advance moves the pagination cursor by one page. The pipeline clamps
// it to the candidate count, so callers never need to.
func Advance(visible, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if visible <= 0 {
		visible = pageSize
	}
	return visible + pageSize
}

// sortTimestamp is the ordering value for a record date. Absent dates
// sort as epoch zero, not as "now".
func sortTimestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// rankLess is the fixed top-3 comparator: amount descending, ties broken
// by earlier date. It never varies with the display sort.
func rankLess(a, b models.Donor) bool {
	if a.AmountUSD != b.AmountUSD {
		return a.AmountUSD > b.AmountUSD
	}
	return sortTimestamp(a.Date) < sortTimestamp(b.Date)
}

// recordKey identifies a record for top-3 exclusion. Records carry a
// unique ID from creation; ID-less rows (demo echoes, legacy data) fall
// back to the name|amount|date tuple, which can collide for identical
// donors and is kept only for those rows.
func recordKey(d models.Donor) string {
	if d.ID != "" {
		return d.ID
	}
	return d.Name + "|" + strconv.Itoa(d.AmountUSD) + "|" + d.Date.UTC().Format(time.RFC3339)
}

func sortForDisplay(records []models.Donor, mode SortMode, view ViewMode) []models.Donor {
	out := append([]models.Donor(nil), records...)
	switch mode {
	case SortAlpha:
		c := collate.New(language.AmericanEnglish)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return sortTimestamp(out[i].Date) > sortTimestamp(out[j].Date)
		})
	default:
		if view == ModePreview {
			// The preview's amount view uses the full rank comparator so
			// its first cards are exactly the ranked top-3 and positional
			// badges agree with the ranking even on amount ties.
			sort.SliceStable(out, func(i, j int) bool {
				return rankLess(out[i], out[j])
			})
			break
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AmountUSD > out[j].AmountUSD
		})
	}
	return out
}

func topThree(records []models.Donor) []models.Donor {
	ranked := append([]models.Donor(nil), records...)
	sort.SliceStable(ranked, func(i, j int) bool { return rankLess(ranked[i], ranked[j]) })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

func buildCard(d models.Donor, rank int) Card {
	name := d.Name
	if name == "" {
		name = AnonymousName
	}
	return Card{
		Donor:          d,
		DisplayName:    name,
		Rank:           rank,
		AmountLabel:    FormatUSD(d.AmountUSD),
		DateLabel:      formatDate(d.Date),
		AvatarInitials: avatarInitials(name),
		AvatarHue:      avatarHue(name),
		Links:          social.LinksFor(d),
	}
}

// ComputeView derives the render model for one paint of the wall.
func ComputeView(records []models.Donor, opts Options) RenderModel {
	goal := opts.GoalUSD
	if goal <= 0 {
		goal = DefaultGoalUSD
	}
	previewCount := opts.PreviewCount
	if previewCount <= 0 {
		previewCount = DefaultPreviewCount
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := 0
	for _, d := range records {
		total += d.AmountUSD
	}
	percent := float64(total) / float64(goal) * 100
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	m := RenderModel{
		TotalUSD:       total,
		DonorCount:     len(records),
		Percent:        percent,
		PercentLabel:   FormatPercent(percent),
		BarWidth:       barWidth(percent),
		RaisedLabel:    FormatUSD(total),
		GoalLabel:      FormatUSD(goal),
		HighlightRanks: opts.Sort == SortAmount,
		Empty:          len(records) == 0,
	}
	if m.Empty {
		return m
	}

	top := topThree(records)
	for i, d := range top {
		m.TopThree = append(m.TopThree, buildCard(d, i+1))
	}

	ordered := sortForDisplay(records, opts.Sort, opts.Mode)

	if opts.Mode == ModePreview {
		if len(ordered) > previewCount {
			ordered = ordered[:previewCount]
		}
		for i, d := range ordered {
			rank := 0
			if m.HighlightRanks && i < 3 {
				rank = i + 1
			}
			m.Items = append(m.Items, buildCard(d, rank))
		}
		m.VisibleCount = len(m.Items)
		return m
	}

	// Full wall: the top three live in their own section, so they are
	// excluded from the paginated candidates regardless of sort.
	topKeys := make(map[string]struct{}, len(top))
	for _, d := range top {
		topKeys[recordKey(d)] = struct{}{}
	}
	candidates := ordered[:0:0]
	for _, d := range ordered {
		if _, isTop := topKeys[recordKey(d)]; !isTop {
			candidates = append(candidates, d)
		}
	}

	visible := opts.Visible
	if visible <= 0 {
		visible = pageSize
	}
	if visible > len(candidates) {
		visible = len(candidates)
	}
	for _, d := range candidates[:visible] {
		m.Items = append(m.Items, buildCard(d, 0))
	}
	m.VisibleCount = visible
	m.HasMore = visible < len(candidates)
	return m
}
