package intake

// flowOverhead bounds pathological rule configurations on top of the graph
// size when resolving a flow.
const flowOverhead = 5

// NextQuestionID resolves the question that follows currentID under the given
// answer set. It returns "" when the flow ends there. An unknown currentID
// also ends the flow; a malformed rule can only stop the flow early, never
// fail it.
func (qs *QuestionSet) NextQuestionID(currentID string, answers Answers) string {
	i, ok := qs.index[currentID]
	if !ok {
		return ""
	}
	q := qs.questions[i]

	switch q.Next.Kind {
	case NextEnd:
		return ""
	case NextGoto:
		return q.Next.Target
	case NextConditional:
		for branchIndex, program := range qs.branchPrograms[q.ID] {
			if evalRule(program, answers) {
				return q.Next.Branches[branchIndex].Target
			}
		}
		return q.Next.Default
	case NextSequential:
		// Fall through to declaration order.
	}

	if i+1 < len(qs.questions) {
		return qs.questions[i+1].ID
	}
	return ""
}

// Flow computes the ordered question ids that apply to the answer set,
// starting from the first question. It is a pure function of the answers:
// it is recomputed from scratch on every change instead of updated
// incrementally. Revisiting an id stops the traversal so a mis-specified
// cyclic rule cannot loop forever.
func (qs *QuestionSet) Flow(answers Answers) []string {
	var flow []string
	visited := make(map[string]bool, len(qs.questions))

	currentID := qs.FirstID()
	for steps := 0; currentID != "" && steps < len(qs.questions)+flowOverhead; steps++ {
		if visited[currentID] {
			break
		}
		if _, ok := qs.index[currentID]; !ok {
			// A rule pointed at an unknown id; the flow just stops here.
			break
		}
		visited[currentID] = true
		flow = append(flow, currentID)

		currentID = qs.NextQuestionID(currentID, answers)
	}

	return flow
}

// Progress reports how many questions of the current flow are answered.
// total is never zero so callers can derive a percentage.
func (qs *QuestionSet) Progress(answers Answers) (completed, total int) {
	flow := qs.Flow(answers)
	for _, id := range flow {
		if _, ok := answers[id]; ok {
			completed++
		}
	}
	total = len(flow)
	if total == 0 {
		total = 1
	}
	return completed, total
}
