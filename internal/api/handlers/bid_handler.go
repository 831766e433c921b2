package handlers

import (
	"errors"
	"net/http"

	"auction-pipeline/internal/domain"
	"auction-pipeline/internal/services"
	"auction-pipeline/pkg/logger"

	"github.com/labstack/echo/v4"
)

type BidHandler struct {
	intake    *services.BidIntake
	processor *services.AuctionProcessor
	tracker   *services.WinnerTracker
	store     domain.BidStore
	log       logger.Logger
}

type SubmitBidResponse struct {
	BidID  string `json:"bid_id"`
	Status string `json:"status"`
}

type RunCycleResponse struct {
	ProcessedCount int `json:"processed_count"`
}

func NewBidHandler(
	intake *services.BidIntake,
	processor *services.AuctionProcessor,
	tracker *services.WinnerTracker,
	store domain.BidStore,
	log logger.Logger,
) *BidHandler {
	return &BidHandler{
		intake:    intake,
		processor: processor,
		tracker:   tracker,
		store:     store,
		log:       log,
	}
}

func (h *BidHandler) SubmitBid(c echo.Context) error {
	var raw domain.RawBid
	if err := c.Bind(&raw); err != nil {
		h.log.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	bid, err := h.intake.Submit(c.Request().Context(), &raw)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error":  vErr.Error(),
				"reason": vErr.Reason(),
			})
		}
		h.log.Error("Failed to queue bid", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to queue bid"})
	}

	return c.JSON(http.StatusAccepted, SubmitBidResponse{
		BidID:  bid.ID,
		Status: bid.Status.String(),
	})
}

// RunCycle triggers one processing cycle by hand, alongside the scheduler.
func (h *BidHandler) RunCycle(c echo.Context) error {
	count, err := h.processor.RunCycle(c.Request().Context())
	if err != nil {
		h.log.Error("Processing cycle failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Processing cycle failed"})
	}

	return c.JSON(http.StatusOK, RunCycleResponse{ProcessedCount: count})
}

func (h *BidHandler) GetLeader(c echo.Context) error {
	itemID := c.Param("id")

	leader := h.tracker.Leader(itemID)
	if leader == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No processed bids for item"})
	}

	return c.JSON(http.StatusOK, leader)
}

func (h *BidHandler) GetBids(c echo.Context) error {
	itemID := c.Param("id")

	bids, err := h.store.AllForItem(c.Request().Context(), itemID)
	if err != nil {
		h.log.Error("Failed to load bids", "item_id", itemID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load bids"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"bids":    bids,
	})
}
