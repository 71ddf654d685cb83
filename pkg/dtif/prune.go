package dtif

// PruneDangling removes references to records that are not in the document:
// image paints whose asset is missing are removed, then children, styles
// and font references pointing at missing records are dropped. It returns
// the number of references removed.
//
// A record can go missing when its transform was dropped or is still queued
// for retry; pruning keeps the emitted document closed in that case.
func (d *Document) PruneDangling() int {
	pruned := 0

	assets := make(map[string]bool, len(d.Assets))
	for _, a := range d.Assets {
		assets[a.ID] = true
	}

	paints := make(map[string]bool, len(d.Paints))
	keptPaints := d.Paints[:0]
	for _, p := range d.Paints {
		if p.Type == PaintImage && !assets[p.ImageID] {
			pruned++
			continue
		}
		paints[p.ID] = true
		keptPaints = append(keptPaints, p)
	}
	d.Paints = keptPaints

	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes[n.ID] = true
	}

	for _, n := range d.Nodes {
		if len(n.Children) > 0 {
			kept := n.Children[:0]
			for _, c := range n.Children {
				if nodes[c] {
					kept = append(kept, c)
				} else {
					pruned++
				}
			}
			n.Children = kept
		}

		if len(n.Styles) > 0 {
			kept := n.Styles[:0]
			for _, s := range n.Styles {
				if s.PaintID != "" && !paints[s.PaintID] {
					pruned++
					continue
				}
				kept = append(kept, s)
			}
			n.Styles = kept
		}

		for i := range n.Attributes {
			if id := n.Attributes[i].Attributes.FontID; id != "" && !assets[id] {
				n.Attributes[i].Attributes.FontID = ""
				pruned++
			}
		}
	}

	return pruned
}
