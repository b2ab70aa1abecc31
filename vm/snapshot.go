package vm

// Snapshot is a serializable view of a VM between steps.
type Snapshot struct {
	State     string   `json:"state" yaml:"state"`
	Row       int      `json:"row" yaml:"row"`
	Col       int      `json:"col" yaml:"col"`
	Direction string   `json:"direction" yaml:"direction"`
	Steps     int      `json:"steps" yaml:"steps"`
	Stack     []int    `json:"stack" yaml:"stack"`
	Rows      int      `json:"rows" yaml:"rows"`
	Cols      int      `json:"cols" yaml:"cols"`
	Grid      []string `json:"grid" yaml:"grid"`
}

// Snapshot captures the current state of the VM. The stack is listed bottom
// first, as integers so that it serializes as numbers rather than a string.
func (vm *VirtualMachine) Snapshot() Snapshot {
	values := vm.stack.Values()
	stack := make([]int, len(values))
	for i, v := range values {
		stack[i] = int(v)
	}
	return Snapshot{
		State:     vm.state.String(),
		Row:       vm.cursor.Row,
		Col:       vm.cursor.Col,
		Direction: vm.direction.String(),
		Steps:     vm.steps,
		Stack:     stack,
		Rows:      vm.grid.Rows(),
		Cols:      vm.grid.Cols(),
		Grid:      vm.grid.Lines(),
	}
}
