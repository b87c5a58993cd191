package session

import "time"

type Entry struct {
	Input   string        `json:"input"`
	Output  string        `json:"output"`
	Elapsed time.Duration `json:"elapsed"`
}

// Record is the history of one code: every message encrypted since the code
// was set.
type Record struct {
	Code    string  `json:"code"`
	Entries []Entry `json:"entries"`
}

func (r Record) Count() int {
	return len(r.Entries)
}

// Statistics keeps records in the order their codes were first used.
type Statistics struct {
	records map[string]*Record
	order   []string
}

func newStatistics() *Statistics {
	return &Statistics{records: make(map[string]*Record)}
}

func (s *Statistics) record(code, input, output string, elapsed time.Duration) {
	rec, ok := s.records[code]
	if !ok {
		rec = &Record{Code: code}
		s.records[code] = rec
		s.order = append(s.order, code)
	}
	rec.Entries = append(rec.Entries, Entry{Input: input, Output: output, Elapsed: elapsed})
}

func (s *Statistics) snapshot() []Record {
	out := make([]Record, 0, len(s.order))
	for _, code := range s.order {
		rec := s.records[code]
		out = append(out, Record{Code: rec.Code, Entries: append([]Entry(nil), rec.Entries...)})
	}
	return out
}
