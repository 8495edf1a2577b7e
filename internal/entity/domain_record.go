// entity/domain_record.go
package entity

import "time"

// VisitInterval is one contiguous span during which a domain was the focused,
// active, non-idle tab. Timestamps are epoch milliseconds.
type VisitInterval struct {
	Start int64 `json:"start" db:"start_ms"`
	End   int64 `json:"end" db:"end_ms"`
}

func (v VisitInterval) Duration() int64 {
	return v.End - v.Start
}

func (v VisitInterval) StartTime() time.Time {
	return time.UnixMilli(v.Start)
}

// DomainRecord aggregates every visit to one normalized domain. TotalTime is
// kept equal to the sum of visit durations by AddVisit.
type DomainRecord struct {
	TotalTime int64           `json:"totalTime" db:"total_time"`
	Visits    []VisitInterval `json:"visits"`
}

func NewDomainRecord() *DomainRecord {
	return &DomainRecord{Visits: []VisitInterval{}}
}

func (r *DomainRecord) AddVisit(visit VisitInterval) {
	r.Visits = append(r.Visits, visit)
	r.TotalTime += visit.Duration()
}

// Consistent reports whether TotalTime matches the visits it summarizes.
func (r DomainRecord) Consistent() bool {
	var sum int64
	for _, v := range r.Visits {
		sum += v.Duration()
	}
	return sum == r.TotalTime
}
