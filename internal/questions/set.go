package questions

// Source tells where the questions of a technology came from.
type Source string

const (
	SourceLocal    Source = "local"
	SourceAI       Source = "ai"
	SourceAIFilled Source = "ai+local"
)

// Entry holds the questions generated for one technology.
type Entry struct {
	Tech      string   `json:"tech" yaml:"tech"`
	Questions []string `json:"questions" yaml:"questions"`
	Source    Source   `json:"source" yaml:"source"`
}

// Set is an ordered mapping from technology label to its questions.
type Set struct {
	entries []*Entry
	index   map[string]int
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Put stores the questions for tech. A label that is already present keeps
// its position and gets the new value.
func (s *Set) Put(tech string, qs []string, src Source) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	entry := &Entry{Tech: tech, Questions: qs, Source: src}
	if i, ok := s.index[tech]; ok {
		s.entries[i] = entry
		return
	}

	s.index[tech] = len(s.entries)
	s.entries = append(s.entries, entry)
}

func (s *Set) Get(tech string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[tech]
	if !ok {
		return nil, false
	}
	return s.entries[i].Questions, true
}

// Techs returns the technology labels in insertion order.
func (s *Set) Techs() []string {
	if s == nil {
		return nil
	}
	techs := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		techs = append(techs, e.Tech)
	}
	return techs
}

// Entries returns a copy of the entries in insertion order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Total returns the number of questions across all technologies.
func (s *Set) Total() int {
	total := 0
	for _, e := range s.Entries() {
		total += len(e.Questions)
	}
	return total
}
