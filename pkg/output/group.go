package output

import "github.com/ccollicutt/notemap/pkg/analyzer"

// Group is the set of lines sharing a category.
type Group struct {
	Category analyzer.Category
	Notes    []analyzer.ClassifiedLine
}

// GroupByCategory groups notes by category. Groups appear in first-seen
// order and keep the original relative order of their lines.
func GroupByCategory(notes []analyzer.ClassifiedLine) []Group {
	index := make(map[analyzer.Category]int)
	var groups []Group

	for _, n := range notes {
		i, ok := index[n.Category]
		if !ok {
			i = len(groups)
			index[n.Category] = i
			groups = append(groups, Group{Category: n.Category})
		}
		groups[i].Notes = append(groups[i].Notes, n)
	}

	return groups
}
