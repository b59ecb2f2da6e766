package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vocadue/vocadue/internal/domain"
	"github.com/vocadue/vocadue/internal/srs"
)

// cardJSON is the wire shape of a card. Timestamps serialize as RFC 3339
// UTC instants so day-boundary interpretation stays on the server.
type cardJSON struct {
	ID           uuid.UUID           `json:"id"`
	ListID       *uuid.UUID          `json:"listId,omitempty"`
	Word         string              `json:"word"`
	Definition   string              `json:"definition"`
	Synonym      string              `json:"synonym,omitempty"`
	Antonym      string              `json:"antonym,omitempty"`
	Example      string              `json:"example,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	ReviewStep   int                 `json:"reviewStep"`
	LastReviewed *time.Time          `json:"lastReviewed,omitempty"`
	NextReview   time.Time           `json:"nextReview"`
	SuccessCount int                 `json:"successCount"`
	FailureCount int                 `json:"failureCount"`
	ReviewStatus domain.ReviewStatus `json:"reviewStatus"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func toCardJSON(c *domain.Card) cardJSON {
	out := cardJSON{
		ID:           c.ID,
		ListID:       c.ListID,
		Word:         c.Word,
		Definition:   c.Definition,
		Synonym:      c.Synonym,
		Antonym:      c.Antonym,
		Example:      c.Example,
		Notes:        c.Notes,
		ReviewStep:   c.ReviewStep,
		NextReview:   c.NextReview.UTC(),
		SuccessCount: c.SuccessCount,
		FailureCount: c.FailureCount,
		ReviewStatus: c.ReviewStatus,
		CreatedAt:    c.CreatedAt.UTC(),
	}
	if c.LastReviewed != nil {
		t := c.LastReviewed.UTC()
		out.LastReviewed = &t
	}
	return out
}

func toCardList(cards []domain.Card) []cardJSON {
	out := make([]cardJSON, 0, len(cards))
	for i := range cards {
		out = append(out, toCardJSON(&cards[i]))
	}
	return out
}

type scheduleJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Intervals   []int  `json:"intervals"`
}

func toScheduleJSON(s *domain.ReviewSchedule) scheduleJSON {
	return scheduleJSON{Name: s.Name, Description: s.Description, Intervals: s.Intervals}
}

// handleGetDueToday returns today's review queue. ?repeat=true re-includes
// cards already reviewed today.
func (s *Server) handleGetDueToday(c echo.Context) error {
	repeat, _ := strconv.ParseBool(c.QueryParam("repeat"))

	due, err := s.scheduler.SelectDueToday(c.Request().Context(), owner(c), s.now(), repeat)
	if err != nil {
		return httpError(err)
	}

	byStep := make(map[string][]cardJSON, len(due.CardsByStep))
	for step, cards := range due.CardsByStep {
		byStep[strconv.Itoa(step)] = toCardList(cards)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cards":       toCardList(due.Cards),
		"cardsByStep": byStep,
		"total":       due.Total,
	})
}

type outcomeRequest struct {
	IsSuccess   *bool  `json:"isSuccess"`
	TimeSpentMS *int64 `json:"timeSpentMs,omitempty"`
}

// handlePostOutcome applies one pass/fail outcome to a card and reports
// whether the session queue is now empty.
func (s *Server) handlePostOutcome(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("cardID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid card id")
	}
	var req outcomeRequest
	if err := c.Bind(&req); err != nil || req.IsSuccess == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isSuccess is required")
	}

	ctx := c.Request().Context()
	now := s.now()
	card, err := s.scheduler.SubmitOutcome(ctx, owner(c), cardID, *req.IsSuccess, req.TimeSpentMS, now)
	if err != nil {
		return httpError(err)
	}

	// The queue state is reconstructible from storage, so session
	// completion is derived rather than held in memory.
	remaining, err := s.scheduler.SelectDueToday(ctx, owner(c), now, false)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"card":            toCardJSON(card),
		"sessionComplete": remaining.Total == 0,
	})
}

// handleGetUpcoming projects review load over [start, end), dates in
// YYYY-MM-DD form. The bounds are midnights in the engine's timezone so
// the window edges line up with its day buckets.
func (s *Server) handleGetUpcoming(c echo.Context) error {
	loc := s.scheduler.Location()
	start, err := time.ParseInLocation(time.DateOnly, c.QueryParam("start"), loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(time.DateOnly, c.QueryParam("end"), loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be YYYY-MM-DD")
	}
	if !start.Before(end) {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be before end")
	}

	upcoming, err := s.scheduler.ProjectUpcoming(c.Request().Context(), owner(c), start, end)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, upcoming)
}

func (s *Server) handleGetSchedule(c echo.Context) error {
	schedule, err := s.scheduler.GetSchedule(c.Request().Context(), owner(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toScheduleJSON(schedule))
}

type schedulePutRequest struct {
	Intervals   []int  `json:"intervals"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handlePutSchedule(c echo.Context) error {
	var req schedulePutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	schedule, err := s.scheduler.UpdateSchedule(c.Request().Context(), owner(c), req.Intervals, req.Name, req.Description, s.now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toScheduleJSON(schedule))
}

func (s *Server) handleGetStreak(c echo.Context) error {
	streak, err := s.scheduler.Streak(c.Request().Context(), owner(c), s.now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, streak)
}

type cardCreateRequest struct {
	Word       string     `json:"word"`
	Definition string     `json:"definition"`
	Synonym    string     `json:"synonym"`
	Antonym    string     `json:"antonym"`
	Example    string     `json:"example"`
	Notes      string     `json:"notes"`
	ListID     *uuid.UUID `json:"listId"`
}

func (s *Server) handlePostCard(c echo.Context) error {
	var req cardCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	card, err := s.scheduler.CreateCard(c.Request().Context(), owner(c), srs.NewCard{
		Word:       req.Word,
		Definition: req.Definition,
		Synonym:    req.Synonym,
		Antonym:    req.Antonym,
		Example:    req.Example,
		Notes:      req.Notes,
		ListID:     req.ListID,
	}, s.now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, toCardJSON(card))
}

func (s *Server) handleGetCards(c echo.Context) error {
	cards, err := s.scheduler.ListCards(c.Request().Context(), owner(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toCardList(cards))
}

func (s *Server) handleGetCard(c echo.Context) error {
	return s.cardAction(c, s.scheduler.GetCard)
}

func (s *Server) handleDeleteCard(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("cardID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid card id")
	}
	if err := s.scheduler.DeleteCard(c.Request().Context(), owner(c), cardID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleResetCard(c echo.Context) error {
	cardID, err := uuid.Parse(c.Param("cardID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid card id")
	}
	card, err := s.scheduler.ResetCardToReview(c.Request().Context(), owner(c), cardID, s.now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toCardJSON(card))
}

func (s *Server) handlePauseCard(c echo.Context) error {
	return s.cardAction(c, s.scheduler.PauseCard)
}

func (s *Server) handleCompleteCard(c echo.Context) error {
	return s.cardAction(c, s.scheduler.CompleteCard)
}

// cardAction runs a card-scoped engine call and renders the updated card.
func (s *Server) cardAction(c echo.Context, fn func(ctx context.Context, ownerID, cardID uuid.UUID) (*domain.Card, error)) error {
	cardID, err := uuid.Parse(c.Param("cardID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid card id")
	}
	card, err := fn(c.Request().Context(), owner(c), cardID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toCardJSON(card))
}
