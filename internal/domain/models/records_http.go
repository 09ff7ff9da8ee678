package models

// Requests for the records HTTP endpoints. Defined in domain for consistency and reuse.

type RecordsRequest struct {
	Ticker       string   `query:"ticker" json:"ticker" validate:"omitempty,max=12"`
	Hours        int      `query:"hours" json:"hours" default:"24" validate:"gte=1,lte=720"`
	Limit        int      `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=5000"`
	MinAggregate *float64 `query:"min_aggregate" json:"min_aggregate" validate:"omitempty,gte=-1,lte=1"`
}

type LatestRecordsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=500"`
}
