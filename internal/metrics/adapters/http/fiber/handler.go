package fiber

import (
	"context"
	"errors"
	"net/http"

	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/metrics/core/domain"
	"channel-metrics-service/internal/metrics/core/ports"
	"channel-metrics-service/internal/metrics/core/usecase"
	"channel-metrics-service/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type ChannelEmissionUseCase interface {
	Execute(ctx context.Context, channelName string) (map[string]domain.Delivery, error)
}

type ExtractAllUseCase interface {
	Execute(ctx context.Context) (map[string]*worker.Handle, error)
}

type TotalsUseCase interface {
	Execute(ctx context.Context) (map[string]domain.Delivery, error)
}

type MetricsHandler struct {
	recomputeUC  ChannelEmissionUseCase
	extractUC    ChannelEmissionUseCase
	extractAllUC ExtractAllUseCase
	totalsUC     TotalsUseCase
}

func NewMetricsHandler(
	recomputeUC ChannelEmissionUseCase,
	extractUC ChannelEmissionUseCase,
	extractAllUC ExtractAllUseCase,
	totalsUC TotalsUseCase,
) *MetricsHandler {
	return &MetricsHandler{
		recomputeUC:  recomputeUC,
		extractUC:    extractUC,
		extractAllUC: extractAllUC,
		totalsUC:     totalsUC,
	}
}

// Recompute godoc
// @Summary Recompute and emit channel metrics
// @Description Recounts stored records for every summary of the channel, saves the totals and emits the non-zero ones
// @Tags Metrics
// @Produce json
// @Param name path string true "Channel name"
// @Success 200 {object} EmissionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{name}/metrics/recompute [post]
func (h *MetricsHandler) Recompute(c *fiber.Ctx) error {
	name := utils.CopyString(c.Params("name"))

	res, err := h.recomputeUC.Execute(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toEmissionResponse(name, res))
}

// Extract godoc
// @Summary Emit stored channel metrics
// @Description Emits the stored totals of every summary of the channel without recomputing them
// @Tags Metrics
// @Produce json
// @Param name path string true "Channel name"
// @Success 200 {object} EmissionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{name}/metrics/extract [post]
func (h *MetricsHandler) Extract(c *fiber.Ctx) error {
	name := utils.CopyString(c.Params("name"))

	res, err := h.extractUC.Execute(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toEmissionResponse(name, res))
}

// ExtractAll godoc
// @Summary Emit stored metrics of every channel
// @Description Dispatches one extract task per channel and returns their task ids
// @Tags Metrics
// @Produce json
// @Success 202 {object} DispatchedResponse
// @Failure 500 {object} ErrorResponse
// @Router /metrics/extract-all [post]
func (h *MetricsHandler) ExtractAll(c *fiber.Ctx) error {
	handles, err := h.extractAllUC.Execute(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	resp := DispatchedResponse{Tasks: make(map[string]string, len(handles))}
	for channel, handle := range handles {
		resp.Tasks[channel] = handle.ID()
	}

	return c.Status(http.StatusAccepted).JSON(resp)
}

// Totals godoc
// @Summary Emit cross-channel totals
// @Description Sums stored totals across channels for each tracked country bucket and emits them
// @Tags Metrics
// @Produce json
// @Success 200 {object} EmissionResponse
// @Failure 500 {object} ErrorResponse
// @Router /metrics/totals [post]
func (h *MetricsHandler) Totals(c *fiber.Ctx) error {
	res, err := h.totalsUC.Execute(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toEmissionResponse("", res))
}

func toEmissionResponse(channel string, res map[string]domain.Delivery) EmissionResponse {
	resp := EmissionResponse{
		Channel: channel,
		Metrics: make(map[string]DeliveryResponse, len(res)),
	}
	for key, d := range res {
		dr := DeliveryResponse{
			Hint:       string(d.Hint),
			Delivered:  d.Delivered,
			StatusCode: d.StatusCode,
			Error:      d.Error,
		}
		if d.Value.Valid {
			v := d.Value.Int64
			dr.Value = &v
		}
		resp.Metrics[key] = dr
	}
	return resp
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidChannelName):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, chports.ErrChannelNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "channel_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrStoreUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "unavailable",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
