package uregex

// Split splits s around each non-overlapping match of p, like Pattern.split
// in the ICU API: the text before each match becomes one slot, each capture
// group's text becomes its own following slot (including "" for a
// non-participating group), and once limit-1 slots have been produced the
// remainder of the input is placed verbatim in the final slot. A limit <= 0
// means no cap on the number of slots.
func (p *Pattern) Split(s string, limit int) []string {
	m := p.Matcher(s)
	var out []string
	appendPos := 0

	for limit <= 0 || len(out) < limit-1 {
		ok, err := m.Find()
		if err != nil || !ok {
			break
		}
		start, end := m.Start(), m.End()
		out = append(out, m.m.Text(appendPos, start))
		for g := 1; g <= m.GroupCount(); g++ {
			text, participated, _ := m.Group(g)
			if !participated {
				out = append(out, "")
			} else {
				out = append(out, text)
			}
		}
		appendPos = end
	}
	out = append(out, m.m.Text(appendPos, m.m.InputLen()))
	return out
}
