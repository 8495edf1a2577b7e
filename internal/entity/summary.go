// entity/summary.go
package entity

type DomainTotal struct {
	Domain     string  `json:"domain"`
	TotalTime  int64   `json:"totalTime"`
	Formatted  string  `json:"formatted"`
	Percentage float64 `json:"percentage"`
	Visits     int     `json:"visits"`
}

type Summary struct {
	Date           string        `json:"date"`
	TodayTotal     int64         `json:"todayTotal"`
	TodayFormatted string        `json:"todayFormatted"`
	TotalTime      int64         `json:"totalTime"`
	TotalDomains   int           `json:"totalDomains"`
	Domains        []DomainTotal `json:"domains"`
}
