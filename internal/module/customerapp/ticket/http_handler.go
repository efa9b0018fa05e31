package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	publicMiddleware "github.com/tsel-ticketmaster/tm-ticket/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/response"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

type HTTPHandler struct {
	Validate      *validator.Validate
	TicketUseCase TicketUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *middleware.CustomerSession, validate *validator.Validate, ticketUseCase TicketUseCase) {
	handler := &HTTPHandler{
		Validate:      validate,
		TicketUseCase: ticketUseCase,
	}

	router.HandleFunc("/tm-ticket/v1/customerapp/tickets", publicMiddleware.SetRouteChain(handler.PurchaseTicket, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/tm-ticket/v1/customerapp/tickets/{ticketId}/resale", publicMiddleware.SetRouteChain(handler.ListTicketForResale, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/tm-ticket/v1/customerapp/tickets/{ticketId}/purchase", publicMiddleware.SetRouteChain(handler.BuyResaleTicket, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/tm-ticket/v1/customerapp/tickets/{ticketId}", publicMiddleware.SetRouteChain(handler.GetTicket)).Methods(http.MethodGet)
	router.HandleFunc("/tm-ticket/v1/customerapp/tickets/{ticketId}/qrcode", publicMiddleware.SetRouteChain(handler.GetTicketQRCode)).Methods(http.MethodGet)
	router.HandleFunc("/tm-ticket/v1/customerapp/accounts/{address}/ticket-count", publicMiddleware.SetRouteChain(handler.GetUserTicketCount)).Methods(http.MethodGet)
	router.HandleFunc("/tm-ticket/v1/customerapp/event", publicMiddleware.SetRouteChain(handler.GetEventInfo)).Methods(http.MethodGet)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf("%s", strings.Join(errMessages, ", "))
}

func ticketIDFromRequest(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["ticketId"], 10, 64)
	return id
}

func (handler HTTPHandler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := PurchaseTicketRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.TicketUseCase.PurchaseTicket(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "ticket has been successfully purchased",
		Data:    resp,
		Meta:    nil,
	})

}

func (handler HTTPHandler) ListTicketForResale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := ListTicketForResaleRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}
	req.TicketID = ticketIDFromRequest(r)

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	if err := handler.TicketUseCase.ListTicketForResale(ctx, req); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "ticket has been successfully listed for resale",
		Data:    nil,
		Meta:    nil,
	})

}

func (handler HTTPHandler) BuyResaleTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := BuyResaleTicketRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}
	req.TicketID = ticketIDFromRequest(r)

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	if err := handler.TicketUseCase.BuyResaleTicket(ctx, req); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "resale ticket has been successfully purchased",
		Data:    nil,
		Meta:    nil,
	})

}

func (handler HTTPHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.TicketUseCase.GetTicket(ctx, ticketIDFromRequest(r))
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "ticket's properties",
		Data:    resp,
		Meta:    nil,
	})

}

func (handler HTTPHandler) GetTicketQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.TicketUseCase.GetTicketQRCode(ctx, ticketIDFromRequest(r))
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "ticket's qr code",
		Data:    resp,
		Meta:    nil,
	})

}

func (handler HTTPHandler) GetUserTicketCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address := mux.Vars(r)["address"]

	resp, err := handler.TicketUseCase.GetUserTicketCount(ctx, address)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "user's ticket count",
		Data:    resp,
		Meta:    nil,
	})

}

func (handler HTTPHandler) GetEventInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.TicketUseCase.GetEventInfo(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "event's properties",
		Data:    resp,
		Meta:    nil,
	})

}
