package fiber

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	channels "channel-metrics-service/internal/channels/core/domain"
	chports "channel-metrics-service/internal/channels/core/ports"
	"channel-metrics-service/internal/ingest/core/domain"
	"channel-metrics-service/internal/ingest/core/normalizer"
	"channel-metrics-service/internal/ingest/core/ports"
	"channel-metrics-service/internal/ingest/core/usecase"
	"channel-metrics-service/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type IngestCSVUseCase interface {
	Execute(ctx context.Context, in usecase.IngestCSVInput) (usecase.IngestCSVResult, error)
	ExecuteFromSource(ctx context.Context, in usecase.IngestFromSourceInput) (usecase.IngestCSVResult, error)
}

type ListRecordsUseCase interface {
	Execute(ctx context.Context, in usecase.ListRecordsInput) ([]domain.Record, error)
}

type Dispatcher interface {
	Dispatch(name string, task worker.Task) *worker.Handle
}

type IngestHandler struct {
	ingestUC   IngestCSVUseCase
	listUC     ListRecordsUseCase
	dispatcher Dispatcher
	validate   *validator.Validate
}

func NewIngestHandler(ingestUC IngestCSVUseCase, listUC ListRecordsUseCase, dispatcher Dispatcher) *IngestHandler {
	return &IngestHandler{
		ingestUC:   ingestUC,
		listUC:     listUC,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// IngestCSV godoc
// @Summary Ingest a channel CSV export
// @Description Normalizes every row of the uploaded export and stores the accepted ones. Malformed and duplicate rows are skipped.
// @Tags Ingest
// @Accept text/csv
// @Produce json
// @Param name path string true "Channel name"
// @Param country query string false "Default country code"
// @Param async query bool false "Run on the worker pool"
// @Success 200 {object} IngestResponse
// @Success 202 {object} TaskAcceptedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{name}/ingest [post]
func (h *IngestHandler) IngestCSV(c *fiber.Ctx) error {
	// fiber reuses its buffers once the handler returns
	name := utils.CopyString(c.Params("name"))
	country := utils.CopyString(c.Query("country", ""))

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "csv payload is required",
		})
	}
	payload := append([]byte(nil), c.Body()...)

	in := usecase.IngestCSVInput{
		ChannelName:        name,
		DefaultCountryCode: country,
		Payload:            bytes.NewReader(payload),
	}

	if c.QueryBool("async", false) {
		handle := h.dispatcher.Dispatch("ingest:"+name, func(ctx context.Context) (any, error) {
			res, err := h.ingestUC.Execute(ctx, in)
			if err != nil {
				return nil, err
			}
			return toIngestResponse(res), nil
		})
		return c.Status(http.StatusAccepted).JSON(TaskAcceptedResponse{
			TaskID: handle.ID(),
			Status: string(handle.Status()),
		})
	}

	res, err := h.ingestUC.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toIngestResponse(res))
}

// IngestFromSource godoc
// @Summary Ingest a stored channel export
// @Description Reads the CSV export under the given key from the bucket and ingests it
// @Tags Ingest
// @Accept json
// @Produce json
// @Param name path string true "Channel name"
// @Param request body IngestFromSourceRequest true "Stored export"
// @Success 200 {object} IngestResponse
// @Success 202 {object} TaskAcceptedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{name}/ingest/s3 [post]
func (h *IngestHandler) IngestFromSource(c *fiber.Ctx) error {
	var req IngestFromSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	in := usecase.IngestFromSourceInput{
		ChannelName:        utils.CopyString(c.Params("name")),
		DefaultCountryCode: req.CountryCode,
		Key:                req.Key,
	}

	if req.Async {
		handle := h.dispatcher.Dispatch("ingest:"+in.ChannelName, func(ctx context.Context) (any, error) {
			res, err := h.ingestUC.ExecuteFromSource(ctx, in)
			if err != nil {
				return nil, err
			}
			return toIngestResponse(res), nil
		})
		return c.Status(http.StatusAccepted).JSON(TaskAcceptedResponse{
			TaskID: handle.ID(),
			Status: string(handle.Status()),
		})
	}

	res, err := h.ingestUC.ExecuteFromSource(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toIngestResponse(res))
}

// ListRecords godoc
// @Summary List stored records of a channel
// @Description Newest first, optionally filtered by country code
// @Tags Ingest
// @Produce json
// @Param name path string true "Channel name"
// @Param country query string false "Country code"
// @Param limit query int false "Page size (1-500, default 50)"
// @Success 200 {object} ListRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /channels/{name}/records [get]
func (h *IngestHandler) ListRecords(c *fiber.Ctx) error {
	name := c.Params("name")

	in := usecase.ListRecordsInput{ChannelName: name}

	if country := c.Query("country", ""); country != "" {
		in.CountryCode = &country
	}

	if limitStr := c.Query("limit", ""); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid 'limit' parameter",
			})
		}
		in.Limit = limit
	}

	records, err := h.listUC.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}

	resp := ListRecordsResponse{
		Channel: name,
		Records: make([]RecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, RecordResponse{
			ID:              r.ID,
			SourceTimestamp: r.SourceTimestamp,
			ChannelUID:      r.ChannelUID,
			Email:           r.Email,
			Name:            r.Name,
			MSISDN:          r.MSISDN,
			CountryCode:     r.CountryCode,
			Age:             r.Age,
			Location:        r.Location,
			Gender:          string(r.Gender),
			CreatedAt:       r.CreatedAt,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func toIngestResponse(res usecase.IngestCSVResult) IngestResponse {
	return IngestResponse{
		Channel:    res.Channel,
		Created:    res.Created,
		Duplicates: res.Duplicates,
		Rejected:   res.Rejected,
		Failed:     res.Failed,
	}
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, normalizer.ErrInvalidHeader):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, chports.ErrChannelNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "channel_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrPayloadNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "payload_not_found",
			Message: err.Error(),
		})
	case errors.Is(err, channels.ErrUnknownKind):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "unsupported_channel",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrSourceNotConfigured),
		errors.Is(err, ports.ErrStoreUnavailable):
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
