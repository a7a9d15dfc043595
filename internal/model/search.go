package model

// SearchTarget selects which collection a search page lists.
type SearchTarget string

const (
	TargetArticles SearchTarget = "articles"
	TargetWorks    SearchTarget = "works"
	TargetUsers    SearchTarget = "users"
	TargetTags     SearchTarget = "tags"
)

// SearchTargets lists the targets in tab order.
var SearchTargets = []SearchTarget{TargetArticles, TargetWorks, TargetUsers, TargetTags}

// ParseSearchTarget maps an empty value to TargetArticles. ok is false for unknown values.
func ParseSearchTarget(s string) (SearchTarget, bool) {
	if s == "" {
		return TargetArticles, true
	}
	for _, t := range SearchTargets {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Label is the tab caption of a target.
func (t SearchTarget) Label() string {
	switch t {
	case TargetArticles:
		return "記事"
	case TargetWorks:
		return "成果物"
	case TargetUsers:
		return "ユーザー"
	case TargetTags:
		return "タグ"
	}
	return ""
}

// SortOrder orders articles and works by creation time.
type SortOrder string

const (
	SortNew SortOrder = "new"
	SortOld SortOrder = "old"
)

// ParseSortOrder maps an empty value to SortNew. ok is false for unknown values.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "", SortNew:
		return SortNew, true
	case SortOld:
		return SortOld, true
	}
	return "", false
}
