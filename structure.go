package memsys

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/memsys/memutils"
)

// Statistics sums the statistics of this memory system's allocator into stats. It returns
// false if the allocator does not report statistics.
func (m *MemorySystem) Statistics(stats *memutils.Statistics) bool {
	if m.vtable.stats != nil {
		m.vtable.stats.AddStatistics(stats)
		return true
	}

	if m.vtable.detailed != nil {
		var detailed memutils.DetailedStatistics
		detailed.Clear()
		m.vtable.detailed.AddDetailedStatistics(&detailed)
		stats.AddStatistics(&detailed.Statistics)
		return true
	}

	return false
}

// DetailedStatistics sums the detailed statistics of this memory system's allocator into stats.
// It returns false if the allocator does not report detailed statistics.
func (m *MemorySystem) DetailedStatistics(stats *memutils.DetailedStatistics) bool {
	if m.vtable.detailed == nil {
		return false
	}

	m.vtable.detailed.AddDetailedStatistics(stats)
	return true
}

// BuildStructureString renders this memory system and all of its descendants as a JSON document
func (m *MemorySystem) BuildStructureString() string {
	writer := jwriter.NewWriter()
	obj := writer.Object()
	m.PrintStructure(&obj)
	obj.End()

	return string(writer.Bytes())
}

// PrintStructure writes this memory system and all of its descendants as fields of the
// provided json object
func (m *MemorySystem) PrintStructure(json *jwriter.ObjectState) {
	m.printNode(json)

	children := m.Children()
	if len(children) == 0 {
		return
	}

	childArray := json.Name("Children").Array()
	defer childArray.End()

	for _, child := range children {
		childObj := childArray.Object()
		child.PrintStructure(&childObj)
		childObj.End()
	}
}

// BuildAncestryString renders this memory system followed by each of its ancestors up to the
// root as a JSON array
func (m *MemorySystem) BuildAncestryString() string {
	writer := jwriter.NewWriter()
	arr := writer.Array()
	m.PrintAncestry(&arr)
	arr.End()

	return string(writer.Bytes())
}

// PrintAncestry writes this memory system and each of its ancestors, nearest first, as
// elements of the provided json array. Children are not included.
func (m *MemorySystem) PrintAncestry(json *jwriter.ArrayState) {
	for system := m; system != nil; system = system.Parent() {
		obj := json.Object()
		system.printNode(&obj)
		obj.End()
	}
}

func (m *MemorySystem) printNode(json *jwriter.ObjectState) {
	json.Name("Identity").String(m.identity)
	json.Name("State").String(m.currentState().String())
	json.Name("Capabilities").String(m.Capabilities().String())
	json.Name("Cleanups").Int(m.CleanupCount(AllCleanups))

	if m.accounting != nil {
		json.Name("Accounting").String(m.accounting.identity)
	}

	var detailed memutils.DetailedStatistics
	detailed.Clear()
	var stats memutils.Statistics
	if m.DetailedStatistics(&detailed) {
		statsObj := json.Name("Statistics").Object()
		detailed.PrintJson(&statsObj)
		statsObj.End()
	} else if m.Statistics(&stats) {
		statsObj := json.Name("Statistics").Object()
		stats.PrintJson(&statsObj)
		statsObj.End()
	}
}
