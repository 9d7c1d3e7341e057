package exercise

// Set tracks progress through a batch of exercises.
type Set struct {
	Items   []Exercise
	Index   int
	Answers map[string]Result
}

// Result records a learner's attempt at one exercise.
type Result struct {
	Answer  string
	Correct bool
}

// NewSet starts at the first exercise with no answers.
func NewSet(items []Exercise) *Set {
	return &Set{Items: items, Answers: make(map[string]Result)}
}

// Current returns the exercise at Index, or false for an empty set.
func (s *Set) Current() (Exercise, bool) {
	if len(s.Items) == 0 {
		return Exercise{}, false
	}
	return s.Items[s.Index], true
}

// Next advances, stopping at the last exercise. It reports whether it moved.
func (s *Set) Next() bool {
	if s.Index+1 >= len(s.Items) {
		return false
	}
	s.Index++
	return true
}

// Prev steps back, stopping at the first exercise.
func (s *Set) Prev() bool {
	if s.Index == 0 {
		return false
	}
	s.Index--
	return true
}

// Answer checks answer against the current exercise and records it.
func (s *Set) Answer(answer string) (Result, bool) {
	ex, ok := s.Current()
	if !ok {
		return Result{}, false
	}
	r := Result{Answer: answer, Correct: CheckAnswer(ex, answer)}
	s.Answers[ex.ID] = r
	return r, true
}

// Score returns the number of correct and attempted exercises.
func (s *Set) Score() (correct, attempted int) {
	for _, r := range s.Answers {
		attempted++
		if r.Correct {
			correct++
		}
	}
	return correct, attempted
}

// Done reports whether every exercise has an answer.
func (s *Set) Done() bool {
	return len(s.Items) > 0 && len(s.Answers) == len(s.Items)
}
