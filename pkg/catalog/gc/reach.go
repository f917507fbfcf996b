package gc

// Reachable computes the set of entity references reachable from the given
// root targets by following outgoing internal edges forward.
//
// rootTargets are the target references of all provider root edges. outgoing
// maps a source reference to the targets of its internal edges. The result is
// the transitive closure; each reference is visited at most once, so the
// traversal terminates on cyclic graphs. Traversal order does not affect the
// result.
func Reachable(rootTargets []string, outgoing map[string][]string) map[string]bool {
	reachable := make(map[string]bool, len(rootTargets))

	queue := make([]string, 0, len(rootTargets))
	for _, ref := range rootTargets {
		if !reachable[ref] {
			reachable[ref] = true
			queue = append(queue, ref)
		}
	}

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		for _, target := range outgoing[ref] {
			if !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
	}

	return reachable
}
