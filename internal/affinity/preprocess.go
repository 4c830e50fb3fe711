package affinity

// Invert replaces every affinity with its reciprocal, producing the target
// weights used by the efficacy score. Binding affinities are dissociation
// constants, so a smaller measured value means stronger binding and a larger
// weight. Zeroes (missing measurements) stay zero and contribute nothing.
func (t *Table) Invert() *Table {
	values := make([][]float64, len(t.values))
	for i, row := range t.values {
		out := make([]float64, len(row))
		for j, v := range row {
			if v != 0 {
				out[j] = 1 / v
			}
		}
		values[i] = out
	}
	return &Table{drugs: t.drugs, targets: t.targets, values: values, targetIdx: t.targetIdx}
}
