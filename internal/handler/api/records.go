package api

import (
	"time"

	models "NewsPulse/internal/domain/models"
	domrepo "NewsPulse/internal/domain/repository"
	xhttp "NewsPulse/pkg/http"
	xlogger "NewsPulse/pkg/logger"
	"NewsPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// RecordsHandler serves enriched records over HTTP for dashboards and other
// downstream consumers.
type RecordsHandler struct {
	logger *xlogger.Logger
	store  domrepo.RecordStore
	loc    *time.Location
	tail   *xlogger.ErrorTail
}

func NewRecordsHandler(logger *xlogger.Logger, store domrepo.RecordStore, loc *time.Location, tail *xlogger.ErrorTail) *RecordsHandler {
	return &RecordsHandler{logger: logger, store: store, loc: loc, tail: tail}
}

func (h *RecordsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/records", h.Records)
	g.GET("/records/latest", h.Latest)
	g.GET("/errors", h.Errors)
	e.GET("/healthz", h.Health)
}

// recordView is the JSON shape of one enriched record.
type recordView struct {
	Ticker           string              `json:"ticker"`
	PublishTime      string              `json:"publish_time"`
	Title            string              `json:"title"`
	Link             string              `json:"link"`
	TitleSentiment   map[string]*float64 `json:"title_sentiment"`
	BodySentiment    map[string]*float64 `json:"body_sentiment"`
	PriceSentiment   *float64            `json:"price_sentiment"`
	Price10MinBefore *float64            `json:"price_10_min_before"`
	PriceAtNews      *float64            `json:"price_at_news"`
	PriceAfter       *float64            `json:"price_after"`
	TrendBefore      *float64            `json:"trend_before"`
	TrendAfter       *float64            `json:"trend_after"`
	MinutesAfter     *float64            `json:"minutes_after"`
	MarketStatus     string              `json:"market_status"`
	AggregateTitle   *float64            `json:"aggregate_title_sentiment"`
	AggregateBody    *float64            `json:"aggregate_body_sentiment"`
	AggregatePrice   *float64            `json:"aggregate_price_sentiment"`
}

func (h *RecordsHandler) view(r *models.EnrichedRecord) recordView {
	scoreMap := func(s models.SentimentSet) map[string]*float64 {
		m := make(map[string]*float64, len(models.Analyzers))
		for _, a := range models.Analyzers {
			m[string(a)] = s.Get(a)
		}
		return m
	}
	return recordView{
		Ticker:           r.Ticker,
		PublishTime:      util.FormatRecordTime(r.PublishTime, h.loc),
		Title:            r.Title,
		Link:             r.Link,
		TitleSentiment:   scoreMap(r.TitleScores),
		BodySentiment:    scoreMap(r.BodyScores),
		PriceSentiment:   r.PriceSentiment,
		Price10MinBefore: r.Price10MinBefore,
		PriceAtNews:      r.PriceAtNews,
		PriceAfter:       r.PriceAfter,
		TrendBefore:      r.TrendBeforePct,
		TrendAfter:       r.TrendAfterPct,
		MinutesAfter:     r.MinutesAfter,
		MarketStatus:     string(r.MarketStatus),
		AggregateTitle:   r.AggregateTitle,
		AggregateBody:    r.AggregateBody,
		AggregatePrice:   r.AggregatePrice,
	}
}

func (h *RecordsHandler) Records(c echo.Context) error {
	req := &models.RecordsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now()
	from := to.Add(-time.Duration(req.Hours) * time.Hour)
	records, err := h.store.Query(c.Request().Context(), req.Ticker, from, to, req.Limit)
	if err != nil {
		h.logger.Error("records query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	views := make([]recordView, 0, len(records))
	for _, r := range records {
		if req.MinAggregate != nil && !meetsAggregate(r, *req.MinAggregate) {
			continue
		}
		views = append(views, h.view(r))
	}
	return xhttp.SuccessResponse(c, views)
}

func (h *RecordsHandler) Latest(c echo.Context) error {
	req := &models.LatestRecordsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now()
	records, err := h.store.Query(c.Request().Context(), "", to.Add(-7*24*time.Hour), to, req.Limit)
	if err != nil {
		h.logger.Error("latest records query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	views := make([]recordView, 0, len(records))
	for _, r := range records {
		views = append(views, h.view(r))
	}
	return xhttp.SuccessResponse(c, views)
}

// Errors serves the aggregated warn/error tail collected during the run.
func (h *RecordsHandler) Errors(c echo.Context) error {
	if h.tail == nil {
		return xhttp.SuccessResponse(c, []xlogger.AggregatedLogEntry{})
	}
	return xhttp.SuccessResponse(c, h.tail.Entries())
}

func (h *RecordsHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// meetsAggregate reports whether any category aggregate clears the
// threshold.
func meetsAggregate(r *models.EnrichedRecord, min float64) bool {
	for _, agg := range []*float64{r.AggregateTitle, r.AggregateBody, r.AggregatePrice} {
		if agg != nil && *agg >= min {
			return true
		}
	}
	return false
}
